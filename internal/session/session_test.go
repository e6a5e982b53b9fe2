package session_test

import (
	"bytes"
	"io"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"estateadmin/internal/domain"
	"estateadmin/internal/repos"
	"estateadmin/internal/session"
	"estateadmin/internal/staging"
)

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// signToken builds a token the way the listing API does; the signature is
// irrelevant to the dashboard.
func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("api-secret"))
	require.NoError(t, err)
	return tok
}

func adminToken(t *testing.T, exp time.Time) string {
	return signToken(t, jwt.MapClaims{
		"id": "admin-7", "name": "Asha Rao", "email": "asha@example.test",
		"avatar": "https://cdn.example.test/asha.png", "exp": exp.Unix(),
	})
}

func newManager(t *testing.T) (*session.Manager, *repos.SessionRepo, *fixedClock) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	store := repos.NewSessionRepo(db)
	sealer, err := session.NewSealer("test-secret")
	require.NoError(t, err)
	m := session.NewManager(store, sealer)
	clk := &fixedClock{t: epoch}
	m.Clock = clk
	return m, store, clk
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		token   func(t *testing.T) string
		wantErr error
	}{
		{"valid", func(t *testing.T) string { return adminToken(t, epoch.Add(time.Hour)) }, nil},
		{"expired", func(t *testing.T) string { return adminToken(t, epoch.Add(-time.Second)) }, domain.ErrTokenExpired},
		{"expires_now", func(t *testing.T) string { return adminToken(t, epoch) }, domain.ErrTokenExpired},
		{"no_exp", func(t *testing.T) string { return signToken(t, jwt.MapClaims{"id": "a"}) }, domain.ErrTokenInvalid},
		{"no_id", func(t *testing.T) string {
			return signToken(t, jwt.MapClaims{"exp": epoch.Add(time.Hour).Unix()})
		}, domain.ErrTokenInvalid},
		{"garbage", func(t *testing.T) string { return "not-a-token" }, domain.ErrTokenInvalid},
		{"numeric_id", func(t *testing.T) string {
			return signToken(t, jwt.MapClaims{"id": 42, "exp": epoch.Add(time.Hour).Unix()})
		}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := session.Decode(tc.token(t), epoch)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.Nil(t, p)
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, p.ID)
		})
	}
}

func TestRestoreFutureExpiryExposesPrincipal(t *testing.T) {
	m, _, _ := newManager(t)
	_, err := m.Login("sid-1", adminToken(t, epoch.Add(2*time.Hour)))
	require.NoError(t, err)

	s, err := m.Restore("sid-1")
	require.NoError(t, err)
	require.Equal(t, "admin-7", s.Principal.ID)
	require.Equal(t, "Asha Rao", s.Principal.Name)
	require.Equal(t, "asha@example.test", s.Principal.Email)
	require.Equal(t, "https://cdn.example.test/asha.png", s.Principal.Avatar)
	require.Equal(t, epoch.Add(2*time.Hour).Unix(), s.Principal.ExpiresAt.Unix())
	require.NotEmpty(t, s.Token)
}

func TestRestoreExpiredClearsStoredToken(t *testing.T) {
	m, store, clk := newManager(t)
	_, err := m.Login("sid-1", adminToken(t, epoch.Add(time.Minute)))
	require.NoError(t, err)

	clk.t = epoch.Add(time.Hour)
	s, err := m.Restore("sid-1")
	require.Nil(t, s)
	require.True(t, session.IsNoSession(err))

	_, err = store.Get("sid-1")
	require.ErrorIs(t, err, domain.ErrNoSession)
}

func TestRestoreTamperedTokenIsNoSession(t *testing.T) {
	m, store, _ := newManager(t)
	require.NoError(t, store.Save("sid-x", []byte("definitely not sealed"), "a", epoch.Add(time.Hour)))

	_, err := m.Restore("sid-x")
	require.True(t, session.IsNoSession(err))
	n, _ := store.Count()
	require.Equal(t, 0, n)
}

func TestRestoreUnknownSid(t *testing.T) {
	m, _, _ := newManager(t)
	_, err := m.Restore("")
	require.True(t, session.IsNoSession(err))
	_, err = m.Restore("never-seen")
	require.True(t, session.IsNoSession(err))
}

func TestLoginRejectsExpiredToken(t *testing.T) {
	m, store, _ := newManager(t)
	_, err := m.Login("sid-1", adminToken(t, epoch.Add(-time.Hour)))
	require.ErrorIs(t, err, domain.ErrTokenExpired)
	n, _ := store.Count()
	require.Equal(t, 0, n)
}

func TestLogoutClearsState(t *testing.T) {
	m, _, _ := newManager(t)
	_, err := m.Login("sid-1", adminToken(t, epoch.Add(time.Hour)))
	require.NoError(t, err)
	require.NoError(t, m.Logout("sid-1"))
	_, err = m.Restore("sid-1")
	require.True(t, session.IsNoSession(err))
}

func TestPurgeExpired(t *testing.T) {
	m, store, clk := newManager(t)
	_, err := m.Login("a", adminToken(t, epoch.Add(time.Minute)))
	require.NoError(t, err)
	_, err = m.Login("b", adminToken(t, epoch.Add(time.Hour)))
	require.NoError(t, err)

	clk.t = epoch.Add(30 * time.Minute)
	ids, err := m.PurgeExpired()
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, ids)
	left, _ := store.Count()
	require.Equal(t, 1, left)
}

func TestSweepReleasesStagesOfPurgedSessions(t *testing.T) {
	m, _, clk := newManager(t)
	_, err := m.Login("gone", adminToken(t, epoch.Add(time.Minute)))
	require.NoError(t, err)
	_, err = m.Login("kept", adminToken(t, epoch.Add(time.Hour)))
	require.NoError(t, err)

	reg, err := staging.NewRegistry(t.TempDir(), 5, 1<<20)
	require.NoError(t, err)
	png := func(name string) staging.Incoming {
		return staging.Incoming{Name: name, Data: bytes.NewReader([]byte("\x89PNG\r\n\x1a\n" + name))}
	}
	require.NoError(t, reg.Stage("gone", "new").Append(png("a.png")))
	require.NoError(t, reg.Stage("kept", "new").Append(png("b.png")))

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	sw, err := session.NewSweeper(m, time.Hour, reg.DiscardSession, logger)
	require.NoError(t, err)

	clk.t = epoch.Add(30 * time.Minute)
	sw.Sweep()

	require.Equal(t, 1, reg.Live())
	require.Zero(t, reg.Stage("gone", "new").Len())
	entries, err := os.ReadDir(reg.Dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestSealerRoundTripAndKeySeparation(t *testing.T) {
	a, err := session.NewSealer("one")
	require.NoError(t, err)
	b, err := session.NewSealer("two")
	require.NoError(t, err)

	sealed, err := a.Seal("token-value")
	require.NoError(t, err)
	require.NotContains(t, string(sealed), "token-value")

	out, err := a.Open(sealed)
	require.NoError(t, err)
	require.Equal(t, "token-value", out)

	_, err = b.Open(sealed)
	require.Error(t, err)
}
