package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/socialjobs/workmatch/internal/domain/contract"
	"github.com/socialjobs/workmatch/internal/domain/entity"
)

// ---------- DTO layer ------------------
type tokenDTO struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	TokenType string    `bson:"token_type"`
	TokenHash string    `bson:"token_hash"`
	CreatedAt time.Time `bson:"created_at"`
	ExpiresAt time.Time `bson:"expires_at"`
	Revoke    bool      `bson:"revoke"`
}

func (t *tokenDTO) ToEntity() *entity.Token {
	return &entity.Token{
		ID:        t.ID,
		UserID:    t.UserID,
		TokenType: entity.TokenType(t.TokenType),
		TokenHash: t.TokenHash,
		CreatedAt: t.CreatedAt,
		ExpiresAt: t.ExpiresAt,
		Revoke:    t.Revoke,
	}
}

func FromTokenEntityToDTO(t *entity.Token) *tokenDTO {
	return &tokenDTO{
		ID:        t.ID,
		UserID:    t.UserID,
		TokenType: string(t.TokenType),
		TokenHash: t.TokenHash,
		CreatedAt: t.CreatedAt,
		ExpiresAt: t.ExpiresAt,
		Revoke:    t.Revoke,
	}
}

// ---------------------------------------

type TokenRepository struct {
	Collection *mongo.Collection
}

// check in compile time if TokenRepository implements ITokenRepository
var _ contract.ITokenRepository = (*TokenRepository)(nil)

func NewTokenRepository(db *mongo.Database) *TokenRepository {
	return &TokenRepository{Collection: db.Collection(contract.CollectionTokens)}
}

func (r *TokenRepository) CreateToken(ctx context.Context, token *entity.Token) error {
	_, err := r.Collection.InsertOne(ctx, FromTokenEntityToDTO(token))
	return mapErr(err)
}

// GetTokenByUserID returns the most recently issued live token of the user.
func (r *TokenRepository) GetTokenByUserID(ctx context.Context, userID string) (*entity.Token, error) {
	filter := bson.M{"user_id": userID, "revoke": false}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var dto tokenDTO
	if err := r.Collection.FindOne(ctx, filter, opts).Decode(&dto); err != nil {
		return nil, mapErr(err)
	}
	return dto.ToEntity(), nil
}

// UpdateToken updates the token hash and expiry
func (r *TokenRepository) UpdateToken(ctx context.Context, tokenID string, tokenHash string, expiry time.Time) error {
	filter := bson.M{"_id": tokenID}
	update := bson.M{"$set": bson.M{"token_hash": tokenHash, "expires_at": expiry}}
	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return contract.ErrNotFound
	}
	return nil
}

// RevokeToken marks a token as revoked by its ID
func (r *TokenRepository) RevokeToken(ctx context.Context, id string) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{"revoke": true}}
	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("failed to revoke token %s: %w", id, contract.ErrNotFound)
	}
	return nil
}

// RevokeAllTokensForUser revokes every live token of the given type.
func (r *TokenRepository) RevokeAllTokensForUser(ctx context.Context, userID string, tokenType entity.TokenType) error {
	filter := bson.D{
		{Key: "user_id", Value: userID},
		{Key: "token_type", Value: string(tokenType)},
		{Key: "revoke", Value: false},
	}
	update := bson.D{
		{Key: "$set", Value: bson.M{"revoke": true}},
	}
	_, err := r.Collection.UpdateMany(ctx, filter, update)
	return err
}
