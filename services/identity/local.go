package identitysvc

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/festify/console/core"
)

// LocalProvider keeps accounts in memory. Passwords are not stored: local accounts sign in with tokens from IssueToken.
type LocalProvider struct {
	users map[string]core.Identity
	mutex sync.RWMutex
}

var _ core.IdentityProvider = (*LocalProvider)(nil)

func NewLocalProvider() *LocalProvider {
	return &LocalProvider{users: make(map[string]core.Identity)}
}

func (p *LocalProvider) CreateUser(ctx context.Context, email, _, displayName string) (core.Identity, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range p.users {
		if u.Email == email {
			return core.Identity{}, core.ErrEmailExists
		}
	}
	idt := core.Identity{UID: uuid.NewString(), Email: email, DisplayName: displayName}
	p.users[idt.UID] = idt
	return idt, nil
}

func (p *LocalProvider) DeleteUser(ctx context.Context, uid string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if _, ok := p.users[uid]; !ok {
		return core.ErrNoIdentity
	}
	delete(p.users, uid)
	return nil
}

func (p *LocalProvider) GetUser(ctx context.Context, uid string) (core.Identity, error) {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	idt, ok := p.users[uid]
	if !ok {
		return core.Identity{}, core.ErrNoIdentity
	}
	return idt, nil
}

// ListUsers returns accounts ordered by email.
func (p *LocalProvider) ListUsers(ctx context.Context, limit int) ([]core.Identity, error) {
	p.mutex.RLock()
	ids := make([]core.Identity, 0, len(p.users))
	for _, u := range p.users {
		ids = append(ids, u)
	}
	p.mutex.RUnlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i].Email < ids[j].Email })
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

// LocalTokens issues and verifies HS256 tokens carrying the uid in the subject claim.
type LocalTokens struct {
	key []byte
	ttl time.Duration
}

var _ core.TokenVerifier = (*LocalTokens)(nil)

func NewLocalTokens(conf *core.Config) *LocalTokens {
	return &LocalTokens{key: []byte(conf.Auth.LocalSigningKey), ttl: conf.Auth.LocalTokenTTL}
}

func (t *LocalTokens) IssueToken(uid string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   uid,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return tok, nil
}

func (t *LocalTokens) VerifyToken(_ context.Context, token string) (string, error) {
	claims := new(jwt.RegisteredClaims)
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return t.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", core.ErrTokenExpired
		}
		return "", errors.Wrap(core.ErrTokenInvalid, err.Error())
	}
	if claims.Subject == "" {
		return "", core.ErrTokenInvalid
	}
	return claims.Subject, nil
}
