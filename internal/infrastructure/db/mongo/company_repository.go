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

// CompanyRepository implements ports.CompanyRepository. Each admin owns at
// most one document, enforced by a unique index on "admin".
type CompanyRepository struct {
	coll *mongo.Collection
}

func NewCompanyRepository(db *mongo.Database) *CompanyRepository {
	return &CompanyRepository{coll: db.Collection(collectionCompanies)}
}

type mongoCompany struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	AdminID       primitive.ObjectID `bson:"admin"`
	Name          string             `bson:"name"`
	Logo          string             `bson:"logo,omitempty"`
	Description   string             `bson:"description,omitempty"`
	Industry      string             `bson:"industry,omitempty"`
	Website       string             `bson:"website,omitempty"`
	Contact       domain.Contact     `bson:"contact"`
	Address       domain.Address     `bson:"address"`
	SocialMedia   domain.SocialMedia `bson:"socialMedia"`
	FoundedYear   string             `bson:"foundedYear,omitempty"`
	EmployeeCount string             `bson:"employeeCount,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

func (m mongoCompany) toDomain() *domain.Company {
	return &domain.Company{
		ID:            m.ID.Hex(),
		AdminID:       m.AdminID.Hex(),
		Name:          m.Name,
		Logo:          m.Logo,
		Description:   m.Description,
		Industry:      m.Industry,
		Website:       m.Website,
		Contact:       m.Contact,
		Address:       m.Address,
		SocialMedia:   m.SocialMedia,
		FoundedYear:   m.FoundedYear,
		EmployeeCount: m.EmployeeCount,
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}
}

func (r *CompanyRepository) FindByAdmin(ctx context.Context, adminID string) (*domain.Company, error) {
	oid, err := objectID(adminID)
	if err != nil {
		return nil, err
	}
	var doc mongoCompany
	if err := findOne(ctx, r.coll, bson.M{"admin": oid}, &doc, domain.ErrCompanyNotFound); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *CompanyRepository) FindByName(ctx context.Context, name string) (*domain.Company, error) {
	var doc mongoCompany
	if err := findOne(ctx, r.coll, bson.M{"name": exactInsensitive(name)}, &doc, domain.ErrCompanyNotFound); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *CompanyRepository) Upsert(ctx context.Context, company *domain.Company) (*domain.Company, bool, error) {
	adminID, err := objectID(company.AdminID)
	if err != nil {
		return nil, false, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoCompany{
		AdminID:       adminID,
		Name:          company.Name,
		Logo:          company.Logo,
		Description:   company.Description,
		Industry:      company.Industry,
		Website:       company.Website,
		Contact:       company.Contact,
		Address:       company.Address,
		SocialMedia:   company.SocialMedia,
		FoundedYear:   company.FoundedYear,
		EmployeeCount: company.EmployeeCount,
		CreatedAt:     company.CreatedAt,
		UpdatedAt:     company.UpdatedAt,
	}

	var saved mongoCompany
	err = r.coll.FindOneAndReplace(ctx,
		bson.M{"admin": adminID},
		doc,
		options.FindOneAndReplace().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&saved)
	if err != nil {
		return nil, false, fmt.Errorf("upsert company: %w", err)
	}
	return saved.toDomain(), company.ID == "", nil
}

func (r *CompanyRepository) ClearLogo(ctx context.Context, adminID string) (*domain.Company, error) {
	oid, err := objectID(adminID)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoCompany
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"admin": oid},
		bson.M{"$unset": bson.M{"logo": ""}, "$set": bson.M{"updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("clear company logo: %w", err)
	}
	return doc.toDomain(), nil
}
