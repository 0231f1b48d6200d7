package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hrdesk/feedback-api/internal/core/domain"
)

// AdminRepository implements ports.AdminRepository.
type AdminRepository struct {
	coll *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{coll: db.Collection(collectionAdmins)}
}

type mongoAdmin struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password"`
	CompanyName  string             `bson:"companyName"`
	Role         string             `bson:"role"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

func (m mongoAdmin) toDomain() *domain.Admin {
	return &domain.Admin{
		ID:           m.ID.Hex(),
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CompanyName:  m.CompanyName,
		Role:         m.Role,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

func (r *AdminRepository) Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAdmin{
		ID:           primitive.NewObjectID(),
		Username:     admin.Username,
		Email:        admin.Email,
		PasswordHash: admin.PasswordHash,
		CompanyName:  admin.CompanyName,
		Role:         admin.Role,
		CreatedAt:    admin.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert admin: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AdminRepository) FindByID(ctx context.Context, id string) (*domain.Admin, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc mongoAdmin
	if err := findOne(ctx, r.coll, bson.M{"_id": oid}, &doc, domain.ErrAdminNotFound); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	var doc mongoAdmin
	if err := findOne(ctx, r.coll, bson.M{"email": email}, &doc, domain.ErrAdminNotFound); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

// FindByCompanyName returns the earliest admin registered under name.
func (r *AdminRepository) FindByCompanyName(ctx context.Context, name string) (*domain.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoAdmin
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	err := r.coll.FindOne(ctx, bson.M{"companyName": exactInsensitive(name)}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, fmt.Errorf("find admin by company: %w", err)
	}
	return doc.toDomain(), nil
}

// EmployeeRepository implements ports.EmployeeRepository.
type EmployeeRepository struct {
	coll *mongo.Collection
}

func NewEmployeeRepository(db *mongo.Database) *EmployeeRepository {
	return &EmployeeRepository{coll: db.Collection(collectionEmployees)}
}

type mongoEmployee struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password"`
	Role         string             `bson:"role"`
	CompanyName  string             `bson:"companyName"`
	AdminID      primitive.ObjectID `bson:"admin,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

func (m mongoEmployee) toDomain() *domain.Employee {
	return &domain.Employee{
		ID:           m.ID.Hex(),
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
		CompanyName:  m.CompanyName,
		AdminID:      hexOrEmpty(m.AdminID),
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

func (r *EmployeeRepository) Create(ctx context.Context, employee *domain.Employee) (*domain.Employee, error) {
	adminID, err := optionalObjectID(employee.AdminID)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoEmployee{
		ID:           primitive.NewObjectID(),
		Username:     employee.Username,
		Email:        employee.Email,
		PasswordHash: employee.PasswordHash,
		Role:         employee.Role,
		CompanyName:  employee.CompanyName,
		AdminID:      adminID,
		CreatedAt:    employee.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmployeeExists
		}
		return nil, fmt.Errorf("insert employee: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*domain.Employee, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc mongoEmployee
	if err := findOne(ctx, r.coll, bson.M{"_id": oid}, &doc, domain.ErrEmployeeNotFound); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	var doc mongoEmployee
	if err := findOne(ctx, r.coll, bson.M{"email": email}, &doc, domain.ErrEmployeeNotFound); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *EmployeeRepository) ListByAdmin(ctx context.Context, adminID string) ([]*domain.Employee, error) {
	oid, err := objectID(adminID)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	docs, err := findMany[mongoEmployee](ctx, r.coll, bson.M{"admin": oid}, opts)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Employee, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *EmployeeRepository) UpdateProfile(ctx context.Context, id, username, email string) (*domain.Employee, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoEmployee
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"username": username, "email": email}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, domain.ErrEmployeeNotFound
	case mongo.IsDuplicateKeyError(err):
		return nil, domain.ErrEmailTaken
	case err != nil:
		return nil, fmt.Errorf("update employee profile: %w", err)
	}
	return doc.toDomain(), nil
}

// UpdatePassword is a single-document $set; concurrent writers overwrite each other.
func (r *EmployeeRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"password": passwordHash}})
	if err != nil {
		return fmt.Errorf("update employee password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, id, domain.ErrEmployeeNotFound)
}
