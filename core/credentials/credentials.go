/*Package credentials persists username/password pairs.

Passwords are stored as bcrypt hashes. Username uniqueness is enforced by
a database constraint, a violation surfaces as ErrDuplicateUsername.
*/
package credentials

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/relabs-tech/catalog/core/csql"
)

// ErrDuplicateUsername is returned by Create when the username is taken.
var ErrDuplicateUsername = errors.New("username already exists")

// User is a stored credential record. PasswordHash is never serialized.
type User struct {
	UserID       int    `json:"user_id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// Store is the credential store backed by the users table.
type Store struct {
	db *csql.DB
}

// New creates a credential store. The users table gets created if it
// does not exist yet.
func New(db *csql.DB) *Store {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS ` + db.Schema + `.users (
user_id serial PRIMARY KEY,
username varchar NOT NULL UNIQUE,
password varchar NOT NULL
);`)
	if err != nil {
		panic(err)
	}
	return &Store{db: db}
}

// FindByUsername returns the user with the given username, or
// csql.ErrNoRows if there is none.
func (s *Store) FindByUsername(ctx context.Context, username string) (*User, error) {
	u := User{}
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, username, password FROM `+s.db.Schema+`.users WHERE username = $1;`,
		username).Scan(&u.UserID, &u.Username, &u.PasswordHash)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user and returns it with the generated user_id.
// The passed password must already be hashed.
func (s *Store) Create(ctx context.Context, username, passwordHash string) (*User, error) {
	u := User{Username: username, PasswordHash: passwordHash}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO `+s.db.Schema+`.users (username, password) VALUES ($1, $2) RETURNING user_id;`,
		username, passwordHash).Scan(&u.UserID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	return &u, nil
}

// HashPassword returns the bcrypt hash for the given password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CompareHashAndPassword reports whether the password matches the hash.
// The comparison is constant time.
func CompareHashAndPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
