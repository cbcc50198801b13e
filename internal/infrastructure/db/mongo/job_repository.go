package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/job-board/internal/core/domain"
	"github.com/99minutos/job-board/internal/core/ports"
)

const jobsCollection = "jobs"

// sortColumns maps API sort fields to document keys.
var sortColumns = map[domain.JobSortField]string{
	domain.SortByCreatedAt: "created_at",
	domain.SortByTitle:     "title",
	domain.SortByCompany:   "company",
	domain.SortByLocation:  "location",
	domain.SortBySalary:    "salary",
}

type JobRepository struct {
	col *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{col: db.Collection(jobsCollection)}
}

type mongoJob struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Company     string             `bson:"company"`
	Location    string             `bson:"location,omitempty"`
	Salary      *float64           `bson:"salary,omitempty"`
	Description string             `bson:"description,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (mj mongoJob) toDomain() *domain.Job {
	return &domain.Job{
		ID:          mj.ID.Hex(),
		Title:       mj.Title,
		Company:     mj.Company,
		Location:    mj.Location,
		Salary:      mj.Salary,
		Description: mj.Description,
		CreatedAt:   mj.CreatedAt.UTC(),
	}
}

// Create inserts job and sets its ID.
func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoJob{
		Title:       job.Title,
		Company:     job.Company,
		Location:    job.Location,
		Salary:      job.Salary,
		Description: job.Description,
		CreatedAt:   job.CreatedAt.UTC(),
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("insert job: unexpected id type %T", res.InsertedID)
	}
	job.ID = oid.Hex()
	return nil
}

// FindByID retrieves a job by its hex id. Malformed ids are reported as
// domain.ErrJobNotFound.
func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrJobNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mj mongoJob
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mj); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return mj.toDomain(), nil
}

// List runs the page query and the count with the same filter.
func (r *JobRepository) List(ctx context.Context, f ports.ListJobsFilter) ([]*domain.Job, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := jobFilter(f)
	opts := options.Find().
		SetSort(jobSort(f.Sort)).
		SetSkip(int64(f.Skip)).
		SetLimit(int64(f.Limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find jobs: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoJob
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode jobs: %w", err)
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}

	jobs := make([]*domain.Job, 0, len(docs))
	for _, d := range docs {
		jobs = append(jobs, d.toDomain())
	}
	return jobs, total, nil
}

// Update applies patch with $set/$unset and returns the document after the update.
func (r *JobRepository) Update(ctx context.Context, id string, patch ports.JobPatch) (*domain.Job, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrJobNotFound
	}

	update := jobUpdate(patch)
	if len(update) == 0 {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mj mongoJob
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&mj)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("update job: %w", err)
	}
	return mj.toDomain(), nil
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrJobNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing the listing filters and sorts.
func (r *JobRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultIndexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}},
		{Keys: bson.D{{Key: "location", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// jobFilter translates the listing filter; empty values add no constraint.
// Search is matched literally, case-insensitively, anywhere in the title.
func jobFilter(f ports.ListJobsFilter) bson.M {
	filter := bson.M{}
	if f.Location != "" {
		filter["location"] = f.Location
	}
	if f.Search != "" {
		filter["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
	}
	return filter
}

// jobSort orders by the requested column, tie-broken by _id in the same
// direction so pages are stable.
func jobSort(s domain.JobSort) bson.D {
	col, ok := sortColumns[s.Field]
	if !ok {
		s = domain.DefaultJobSort
		col = sortColumns[s.Field]
	}
	dir := 1
	if s.Descending {
		dir = -1
	}
	return bson.D{{Key: col, Value: dir}, {Key: "_id", Value: dir}}
}

// jobUpdate builds the update document for p. It is empty when p changes
// nothing; created_at is never part of it.
func jobUpdate(p ports.JobPatch) bson.M {
	set := bson.M{}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Company != nil {
		set["company"] = *p.Company
	}
	if p.Location != nil {
		set["location"] = *p.Location
	}
	if p.Salary != nil {
		set["salary"] = *p.Salary
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if p.ClearSalary && p.Salary == nil {
		update["$unset"] = bson.M{"salary": ""}
	}
	return update
}
