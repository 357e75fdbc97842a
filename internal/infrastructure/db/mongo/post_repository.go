package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pawsreunite/pawsreunite-api/internal/core/domain"
)

const collectionPosts = "posts"

type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection(collectionPosts)}
}

type postDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Species     string             `bson:"species"`
	Breed       string             `bson:"breed,omitempty"`
	Color       string             `bson:"color,omitempty"`
	Description string             `bson:"description,omitempty"`
	Photos      []string           `bson:"photos"`
	Suburb      string             `bson:"suburb"`
	ContactInfo string             `bson:"contact_info,omitempty"`
	Status      string             `bson:"status"`
	UserID      primitive.ObjectID `bson:"user_id"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func toPostDocument(p *domain.Post) postDocument {
	return postDocument{
		ID:          optionalID(p.ID),
		Title:       p.Title,
		Species:     p.Species,
		Breed:       p.Breed,
		Color:       p.Color,
		Description: p.Description,
		Photos:      p.Photos,
		Suburb:      p.Suburb,
		ContactInfo: p.ContactInfo,
		Status:      string(p.Status),
		UserID:      optionalID(p.UserID),
		CreatedAt:   p.CreatedAt,
	}
}

func (d postDocument) toDomain() *domain.Post {
	return &domain.Post{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Species:     d.Species,
		Breed:       d.Breed,
		Color:       d.Color,
		Description: d.Description,
		Photos:      d.Photos,
		Suburb:      d.Suburb,
		ContactInfo: d.ContactInfo,
		Status:      domain.PostStatus(d.Status),
		UserID:      hexOrEmpty(d.UserID),
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

// Create inserts a new post document.
func (r *PostRepository) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toPostDocument(p)
	doc.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := objectID(id, domain.ErrPostNotFound)
	if err != nil {
		return nil, err
	}

	var doc postDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// postFilter builds the query for f. Text fields match whole values,
// ignoring case.
func postFilter(f domain.PostFilter) bson.M {
	filter := bson.M{}
	exact := func(field, v string) {
		if v != "" {
			filter[field] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(v) + "$", Options: "i"}
		}
	}
	exact("species", f.Species)
	exact("breed", f.Breed)
	exact("color", f.Color)
	exact("suburb", f.Suburb)
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.UserID != "" {
		filter["user_id"] = optionalID(f.UserID)
	}
	return filter
}

// List returns posts matching f, newest first.
func (r *PostRepository) List(ctx context.Context, f domain.PostFilter) ([]*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, postFilter(f), options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	defer cur.Close(ctx)

	var docs []postDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	out := make([]*domain.Post, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *PostRepository) Update(ctx context.Context, p *domain.Post) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := objectID(p.ID, domain.ErrPostNotFound)
	if err != nil {
		return err
	}
	doc := toPostDocument(p)
	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"title":        doc.Title,
		"species":      doc.Species,
		"breed":        doc.Breed,
		"color":        doc.Color,
		"description":  doc.Description,
		"photos":       doc.Photos,
		"suburb":       doc.Suburb,
		"contact_info": doc.ContactInfo,
		"status":       doc.Status,
	}})
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := objectID(id, domain.ErrPostNotFound)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	return deleteByRef(ctx, r.col, "user_id", userID)
}

// DistinctBreeds groups the breeds seen in posts by species.
func (r *PostRepository) DistinctBreeds(ctx context.Context) ([]domain.SpeciesBreeds, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"breed": bson.M{"$nin": bson.A{"", nil}}}}},
		{{Key: "$group", Value: bson.M{"_id": "$species", "breeds": bson.M{"$addToSet": "$breed"}}}},
		{{Key: "$project", Value: bson.M{
			"_id":     0,
			"species": "$_id",
			"breeds":  bson.M{"$sortArray": bson.M{"input": "$breeds", "sortBy": 1}},
		}}},
		{{Key: "$sort", Value: bson.M{"species": 1}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate breeds: %w", err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		Species string   `bson:"species"`
		Breeds  []string `bson:"breeds"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode breeds: %w", err)
	}
	out := make([]domain.SpeciesBreeds, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.SpeciesBreeds{Species: row.Species, Breeds: row.Breeds})
	}
	return out, nil
}

// DistinctValues returns the sorted non-empty string values stored under field.
func (r *PostRepository) DistinctValues(ctx context.Context, field string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	raw, err := r.col.Distinct(ctx, field, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", field, err)
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out, nil
}

// EnsureIndexes creates the indexes used by listings and filters.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "species", Value: 1}, {Key: "breed", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "suburb", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// deleteByRef removes every document of col whose field references hexID.
func deleteByRef(ctx context.Context, col *mongo.Collection, field, hexID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return 0, nil
	}
	res, err := col.DeleteMany(ctx, bson.M{field: oid})
	if err != nil {
		return 0, fmt.Errorf("delete %s by %s: %w", col.Name(), field, err)
	}
	return res.DeletedCount, nil
}
