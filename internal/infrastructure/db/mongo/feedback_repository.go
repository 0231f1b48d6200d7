package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hrdesk/feedback-api/internal/core/domain"
)

type FeedbackRepository struct {
	coll *mongo.Collection
}

func NewFeedbackRepository(db *mongo.Database) *FeedbackRepository {
	return &FeedbackRepository{coll: db.Collection(collectionFeedback)}
}

type mongoFeedback struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	SenderEmail   string             `bson:"senderEmail"`
	ReceiverEmail string             `bson:"receiverEmail"`
	Subject       string             `bson:"subject"`
	Description   string             `bson:"description"`
	CompanyName   string             `bson:"companyName"`
	AdminID       primitive.ObjectID `bson:"admin"`
	Status        string             `bson:"status"`
	Response      string             `bson:"response,omitempty"`
	SentAt        time.Time          `bson:"sentAt"`
	RespondedAt   *time.Time         `bson:"respondedAt,omitempty"`
}

func (m mongoFeedback) toDomain() *domain.Feedback {
	f := &domain.Feedback{
		ID:            m.ID.Hex(),
		SenderEmail:   m.SenderEmail,
		ReceiverEmail: m.ReceiverEmail,
		Subject:       m.Subject,
		Description:   m.Description,
		CompanyName:   m.CompanyName,
		AdminID:       m.AdminID.Hex(),
		Status:        domain.FeedbackStatus(m.Status),
		Response:      m.Response,
		SentAt:        m.SentAt.UTC(),
	}
	if m.RespondedAt != nil {
		at := m.RespondedAt.UTC()
		f.RespondedAt = &at
	}
	return f
}

var newestFirst = options.Find().SetSort(bson.D{{Key: "sentAt", Value: -1}})

func (r *FeedbackRepository) Create(ctx context.Context, f *domain.Feedback) (*domain.Feedback, error) {
	adminID, err := objectID(f.AdminID)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoFeedback{
		ID:            primitive.NewObjectID(),
		SenderEmail:   f.SenderEmail,
		ReceiverEmail: f.ReceiverEmail,
		Subject:       f.Subject,
		Description:   f.Description,
		CompanyName:   f.CompanyName,
		AdminID:       adminID,
		Status:        string(f.Status),
		Response:      f.Response,
		SentAt:        f.SentAt,
		RespondedAt:   f.RespondedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert feedback: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *FeedbackRepository) FindByID(ctx context.Context, id string) (*domain.Feedback, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc mongoFeedback
	if err := findOne(ctx, r.coll, bson.M{"_id": oid}, &doc, domain.ErrFeedbackNotFound); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *FeedbackRepository) ListByAdmin(ctx context.Context, adminID string) ([]*domain.Feedback, error) {
	oid, err := objectID(adminID)
	if err != nil {
		return nil, err
	}
	return r.list(ctx, bson.M{"admin": oid})
}

func (r *FeedbackRepository) ListByParticipant(ctx context.Context, email, adminID string) ([]*domain.Feedback, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"senderEmail": email},
		bson.M{"receiverEmail": email},
	}}
	if adminID != "" {
		oid, err := objectID(adminID)
		if err != nil {
			return nil, err
		}
		filter["admin"] = oid
	}
	return r.list(ctx, filter)
}

func (r *FeedbackRepository) list(ctx context.Context, filter bson.M) ([]*domain.Feedback, error) {
	docs, err := findMany[mongoFeedback](ctx, r.coll, filter, newestFirst)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Feedback, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *FeedbackRepository) Update(ctx context.Context, f *domain.Feedback) error {
	oid, err := objectID(f.ID)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"status": string(f.Status), "response": f.Response}
	if f.RespondedAt != nil {
		set["respondedAt"] = f.RespondedAt.UTC()
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update feedback: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrFeedbackNotFound
	}
	return nil
}
