package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"jobstash/internal/models"
)

const defaultListLimit = 50

// MongoStore persists saved jobs in a MongoDB collection with a unique
// index on the job URL, the backend's only dedup mechanism.
type MongoStore struct {
	client *mongo.Client
	jobs   *mongo.Collection
}

// jobDoc is the Mongo document shape; _id is an ObjectID there, while
// the API exposes it as a hex string.
type jobDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Company     string             `bson:"company"`
	Location    string             `bson:"location"`
	Description string             `bson:"description"`
	URL         string             `bson:"url"`
	Platform    models.Platform    `bson:"platform"`
	Status      models.Status      `bson:"status"`
	Notes       string             `bson:"notes"`
	DateSaved   time.Time          `bson:"date_saved"`
}

func (d jobDoc) toModel() models.SavedJob {
	return models.SavedJob{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Company:     d.Company,
		Location:    d.Location,
		Description: d.Description,
		URL:         d.URL,
		Platform:    d.Platform,
		Status:      d.Status,
		Notes:       d.Notes,
		DateSaved:   d.DateSaved,
	}
}

func docFromModel(job models.SavedJob) jobDoc {
	return jobDoc{
		Title:       job.Title,
		Company:     job.Company,
		Location:    job.Location,
		Description: job.Description,
		URL:         job.URL,
		Platform:    job.Platform,
		Status:      job.Status,
		Notes:       job.Notes,
		DateSaved:   job.DateSaved,
	}
}

// NewMongoStore connects to MongoDB and ensures the URL index exists.
func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("can't ping MongoDB: %v", err)
	}

	s := &MongoStore{
		client: client,
		jobs:   client.Database(database).Collection(collection),
	}
	if err := s.createIndexes(ctx); err != nil {
		return nil, fmt.Errorf("can't create indexes: %v", err)
	}
	return s, nil
}

func (s *MongoStore) createIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.jobs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "url", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = s.jobs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date_saved", Value: -1}},
	})
	return err
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) Insert(ctx context.Context, job models.SavedJob) (models.SavedJob, error) {
	// The unique index is authoritative, but a pre-check gives the
	// same "already exists" answer without relying on error shapes.
	count, err := s.jobs.CountDocuments(ctx, bson.M{"url": job.URL})
	if err != nil {
		return models.SavedJob{}, err
	}
	if count > 0 {
		return models.SavedJob{}, ErrDuplicateURL
	}

	res, err := s.jobs.InsertOne(ctx, docFromModel(job))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.SavedJob{}, ErrDuplicateURL
		}
		return models.SavedJob{}, err
	}

	job.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return job, nil
}

func (s *MongoStore) List(ctx context.Context, filter ListFilter) ([]models.SavedJob, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Platform != "" {
		query["platform"] = filter.Platform
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date_saved", Value: -1}}).
		SetSkip(int64(filter.Skip)).
		SetLimit(int64(limit))

	cursor, err := s.jobs.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeJobs(ctx, cursor)
}

func (s *MongoStore) Get(ctx context.Context, id string) (models.SavedJob, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.SavedJob{}, ErrBadID
	}

	var doc jobDoc
	err = s.jobs.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return models.SavedJob{}, ErrNotFound
	}
	if err != nil {
		return models.SavedJob{}, err
	}
	return doc.toModel(), nil
}

func (s *MongoStore) Update(ctx context.Context, id string, fields UpdateFields) (models.SavedJob, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.SavedJob{}, ErrBadID
	}

	set := bson.M{}
	if fields.Title != nil {
		set["title"] = *fields.Title
	}
	if fields.Company != nil {
		set["company"] = *fields.Company
	}
	if fields.Location != nil {
		set["location"] = *fields.Location
	}
	if fields.Status != nil {
		set["status"] = *fields.Status
	}
	if fields.Notes != nil {
		set["notes"] = *fields.Notes
	}

	res, err := s.jobs.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return models.SavedJob{}, err
	}
	if res.MatchedCount == 0 {
		return models.SavedJob{}, ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrBadID
	}

	res, err := s.jobs.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Stats(ctx context.Context) (Summary, error) {
	summary := Summary{
		StatusBreakdown: make(map[models.Status]int),
		Platforms:       make(map[models.Platform]int),
	}

	total, err := s.jobs.CountDocuments(ctx, bson.M{})
	if err != nil {
		return Summary{}, err
	}
	summary.TotalJobs = int(total)

	type groupRow struct {
		ID    string `bson:"_id"`
		Count int    `bson:"count"`
	}

	groupBy := func(field string) ([]groupRow, error) {
		pipeline := mongo.Pipeline{
			bson.D{{Key: "$group", Value: bson.D{
				{Key: "_id", Value: "$" + field},
				{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			}}},
		}
		cursor, err := s.jobs.Aggregate(ctx, pipeline)
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)

		var rows []groupRow
		if err := cursor.All(ctx, &rows); err != nil {
			return nil, err
		}
		return rows, nil
	}

	statusRows, err := groupBy("status")
	if err != nil {
		return Summary{}, err
	}
	for _, row := range statusRows {
		summary.StatusBreakdown[models.Status(row.ID)] = row.Count
	}

	platformRows, err := groupBy("platform")
	if err != nil {
		return Summary{}, err
	}
	for _, row := range platformRows {
		summary.Platforms[models.Platform(row.ID)] = row.Count
	}

	return summary, nil
}

func (s *MongoStore) Search(ctx context.Context, query string, limit int) ([]models.SavedJob, error) {
	if limit <= 0 {
		limit = 20
	}

	filter := bson.M{"$or": bson.A{
		bson.M{"title": bson.M{"$regex": query, "$options": "i"}},
		bson.M{"company": bson.M{"$regex": query, "$options": "i"}},
	}}

	opts := options.Find().
		SetSort(bson.D{{Key: "date_saved", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.jobs.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeJobs(ctx, cursor)
}

func decodeJobs(ctx context.Context, cursor *mongo.Cursor) ([]models.SavedJob, error) {
	jobs := []models.SavedJob{}
	for cursor.Next(ctx) {
		var doc jobDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		jobs = append(jobs, doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return jobs, nil
}
