package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/journal/core/user"
)

// UsersCollection is the default collection name for account records.
const UsersCollection = "users"

type userDoc struct {
	ID             bson.ObjectID `bson:"_id,omitempty"`
	Username       string        `bson:"username"`
	Email          string        `bson:"email"`
	DisplayName    string        `bson:"username_display"`
	AvatarURL      string        `bson:"avatar_url,omitempty"`
	BioText        string        `bson:"bio_text,omitempty"`
	BioImageURL    string        `bson:"bio_image_url,omitempty"`
	AuthProvider   string        `bson:"auth_provider"`
	PasswordHash   string        `bson:"password_hash,omitempty"`
	OAuthID        string        `bson:"oauth_id,omitempty"`
	CloseFriends   []string      `bson:"close_friends"`
	CanViewFriends []string      `bson:"can_view_friends"`
	CreatedAt      time.Time     `bson:"createdAt"`
	UpdatedAt      time.Time     `bson:"updatedAt"`
}

func (d userDoc) toUser() user.User {
	return user.User{
		ID:             d.ID.Hex(),
		Username:       d.Username,
		Email:          d.Email,
		DisplayName:    d.DisplayName,
		AvatarURL:      d.AvatarURL,
		BioText:        d.BioText,
		BioImageURL:    d.BioImageURL,
		AuthProvider:   user.AuthProvider(d.AuthProvider),
		PasswordHash:   d.PasswordHash,
		OAuthID:        d.OAuthID,
		CloseFriends:   d.CloseFriends,
		CanViewFriends: d.CanViewFriends,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// UserStore persists accounts in a MongoDB collection. It implements
// user.Store and doubles as the session.UserLoader.
type UserStore struct {
	coll *mongo.Collection
}

// NewUserStore returns a store over the users collection of db.
func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{coll: db.Collection(UsersCollection)}
}

// EnsureIndexes creates unique indexes on username and email. Uniqueness
// is enforced here rather than by pre-flight lookups, so concurrent
// registrations cannot race past each other.
func (s *UserStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}

func (s *UserStore) Create(ctx context.Context, u user.User) (user.User, error) {
	now := time.Now()
	doc := userDoc{
		ID:             bson.NewObjectID(),
		Username:       u.Username,
		Email:          u.Email,
		DisplayName:    u.DisplayName,
		AvatarURL:      u.AvatarURL,
		BioText:        u.BioText,
		BioImageURL:    u.BioImageURL,
		AuthProvider:   string(u.AuthProvider),
		PasswordHash:   u.PasswordHash,
		OAuthID:        u.OAuthID,
		CloseFriends:   u.CloseFriends,
		CanViewFriends: u.CanViewFriends,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if doc.CloseFriends == nil {
		doc.CloseFriends = []string{}
	}
	if doc.CanViewFriends == nil {
		doc.CanViewFriends = []string{}
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return user.User{}, user.ErrAlreadyExists
		}
		return user.User{}, err
	}
	return doc.toUser(), nil
}

func (s *UserStore) FindByID(ctx context.Context, id string) (user.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		// Malformed ids cannot match any record.
		return user.User{}, user.ErrNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (user.User, error) {
	return s.findOne(ctx, bson.M{"username": username})
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (user.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

// FindUserByID satisfies the session user loader.
func (s *UserStore) FindUserByID(ctx context.Context, id string) (user.User, error) {
	return s.FindByID(ctx, id)
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M) (user.User, error) {
	var doc userDoc
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return doc.toUser(), nil
}
