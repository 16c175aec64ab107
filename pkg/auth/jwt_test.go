package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/Programmer60/BorrowEase-sub002/pkg/auth"
)

func newTestJWTService(t *testing.T, expiration time.Duration) *auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(auth.JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		Issuer:     "borrowease-test",
		Expiration: expiration,
	})
	require.NoError(t, err)
	return svc
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService(t, 15*time.Minute)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, []string{auth.RoleAdmin, auth.RoleLender})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, []string{auth.RoleAdmin, auth.RoleLender}, claims.Roles)
	assert.Equal(t, "borrowease-test", claims.Issuer)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestJWTService(t, -time.Hour)

	token, err := svc.GenerateToken(uuid.New(), []string{auth.RoleBorrower})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_InvalidSignature(t *testing.T) {
	svc1, err := auth.NewJWTService(auth.JWTConfig{Secret: "secret-one", Expiration: time.Minute})
	require.NoError(t, err)
	svc2, err := auth.NewJWTService(auth.JWTConfig{Secret: "secret-two", Expiration: time.Minute})
	require.NoError(t, err)

	token, err := svc1.GenerateToken(uuid.New(), []string{auth.RoleBorrower})
	require.NoError(t, err)

	_, err = svc2.ValidateToken(token)
	assert.Error(t, err)
}

func generateKeyPair(t *testing.T) (privPEM, pubPEM []byte) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	pubBytes, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	privPEM = pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	pubPEM = pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubBytes})
	return privPEM, pubPEM
}

func TestRSAValidationOnlyMode(t *testing.T) {
	privPEM, pubPEM := generateKeyPair(t)

	issuer, err := auth.NewJWTService(auth.JWTConfig{PrivateKeyPEM: string(privPEM), Expiration: time.Minute})
	require.NoError(t, err)
	validator, err := auth.NewJWTService(auth.JWTConfig{PublicKeyPEM: string(pubPEM)})
	require.NoError(t, err)

	token, err := issuer.GenerateToken(uuid.New(), []string{auth.RoleAdmin})
	require.NoError(t, err)

	claims, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.HasRole(auth.RoleAdmin))

	_, err = validator.GenerateToken(uuid.New(), nil)
	assert.Error(t, err)
}

func TestValidateToken_RejectsHMACTokenInRSAMode(t *testing.T) {
	_, pubPEM := generateKeyPair(t)
	validator, err := auth.NewJWTService(auth.JWTConfig{PublicKeyPEM: string(pubPEM)})
	require.NoError(t, err)

	token, err := newTestJWTService(t, time.Minute).GenerateToken(uuid.New(), []string{auth.RoleAdmin})
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_IssuerAndLeeway(t *testing.T) {
	other, err := auth.NewJWTService(auth.JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		Issuer:     "someone-else",
		Expiration: time.Minute,
	})
	require.NoError(t, err)
	token, err := other.GenerateToken(uuid.New(), nil)
	require.NoError(t, err)

	_, err = newTestJWTService(t, time.Minute).ValidateToken(token)
	assert.Error(t, err, "foreign issuer must be refused")

	tolerant, err := auth.NewJWTService(auth.JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		Issuer:     "borrowease-test",
		Expiration: -time.Second,
		Leeway:     time.Minute,
	})
	require.NoError(t, err)
	justExpired, err := tolerant.GenerateToken(uuid.New(), []string{auth.RoleLender})
	require.NoError(t, err)

	_, err = tolerant.ValidateToken(justExpired)
	assert.NoError(t, err, "leeway covers small clock skew")
	_, err = newTestJWTService(t, time.Minute).ValidateToken(justExpired)
	assert.Error(t, err)
}

func TestNewJWTService_RequiresKeyMaterial(t *testing.T) {
	_, err := auth.NewJWTService(auth.JWTConfig{})
	assert.Error(t, err)
}

func TestHasRole(t *testing.T) {
	claims := auth.Claims{Roles: []string{auth.RoleAdmin, auth.RoleAuditor}}

	assert.True(t, claims.HasRole(auth.RoleAdmin))
	assert.True(t, claims.HasRole(auth.RoleAuditor))
	assert.False(t, claims.HasRole(auth.RoleBorrower))
	assert.False(t, claims.HasRole("nonexistent"))
}

func TestClaimsFromContext(t *testing.T) {
	_, ok := auth.ClaimsFromContext(context.Background())
	assert.False(t, ok)

	expected := &auth.Claims{UserID: uuid.New(), Roles: []string{auth.RoleLender}}
	got, ok := auth.ClaimsFromContext(auth.ContextWithClaims(context.Background(), expected))
	require.True(t, ok)
	assert.Equal(t, expected.UserID, got.UserID)
}

func TestUnaryAuthInterceptor(t *testing.T) {
	svc := newTestJWTService(t, time.Minute)
	interceptor := auth.UnaryAuthInterceptor(svc, []string{"/grpc.health.v1.Health/Check"})
	info := &grpc.UnaryServerInfo{FullMethod: "/riskengine.v1.RiskEngineService/GetCreditScore"}

	var seen *auth.Claims
	handler := func(ctx context.Context, req any) (any, error) {
		seen, _ = auth.ClaimsFromContext(ctx)
		return "ok", nil
	}

	t.Run("missing header is unauthenticated", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(), metadata.MD{})
		_, err := interceptor(ctx, nil, info, handler)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("valid bearer token attaches claims", func(t *testing.T) {
		userID := uuid.New()
		token, err := svc.GenerateToken(userID, []string{auth.RoleBorrower})
		require.NoError(t, err)

		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+token))
		resp, err := interceptor(ctx, nil, info, handler)
		require.NoError(t, err)
		assert.Equal(t, "ok", resp)
		require.NotNil(t, seen)
		assert.Equal(t, userID, seen.UserID)
	})

	t.Run("skipped method bypasses auth", func(t *testing.T) {
		_, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}, handler)
		assert.NoError(t, err)
	})
}

func TestRequireRoles(t *testing.T) {
	interceptor := auth.RequireRoles(map[string][]string{
		"/svc/Admin": {auth.RoleAdmin},
	})
	handler := func(ctx context.Context, req any) (any, error) { return "ok", nil }

	borrower := auth.ContextWithClaims(context.Background(), &auth.Claims{UserID: uuid.New(), Roles: []string{auth.RoleBorrower}})
	admin := auth.ContextWithClaims(context.Background(), &auth.Claims{UserID: uuid.New(), Roles: []string{auth.RoleAdmin}})

	_, err := interceptor(borrower, nil, &grpc.UnaryServerInfo{FullMethod: "/svc/Admin"}, handler)
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = interceptor(admin, nil, &grpc.UnaryServerInfo{FullMethod: "/svc/Admin"}, handler)
	assert.NoError(t, err)

	_, err = interceptor(borrower, nil, &grpc.UnaryServerInfo{FullMethod: "/svc/Open"}, handler)
	assert.NoError(t, err)

	_, err = interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/svc/Admin"}, handler)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}
