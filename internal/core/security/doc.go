// Package security holds the credential and token primitives used by the
// authentication flow: bcrypt password hashing, the payload cipher that hides
// token contents, and the HS256 token service with rolling refresh.
//
// Every type is configured explicitly at construction; nothing in this
// package reads the process environment.
package security
