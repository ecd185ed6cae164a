package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	appdb "tetconnect/internal/db"
	"tetconnect/internal/domain"
	"tetconnect/internal/game"
	"tetconnect/internal/service"
	"tetconnect/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type apiEnv struct {
	db      *gorm.DB
	router  *gin.Engine
	rounds  *service.RoundService
	family  domain.Family
	tokens  map[string]string
	userIDs map[string]uint
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gdb, err := appdb.OpenSQLite(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, appdb.Migrate(gdb))

	env := &apiEnv{db: gdb, tokens: map[string]string{}, userIDs: map[string]uint{}}
	for name, role := range map[string]string{"an": domain.RoleUser, "binh": domain.RoleUser, "cuong": domain.RoleUser, "admin": domain.RoleAdmin} {
		u := domain.User{Username: name, Password: "hash", Role: role}
		require.NoError(t, gdb.Create(&u).Error)
		token, err := utils.GenerateJWT(u.ID, testSecret)
		require.NoError(t, err)
		env.tokens[name] = token
		env.userIDs[name] = u.ID
	}

	families := service.NewFamilyService(gdb)
	ledger := service.NewLedger(gdb, nil, 1000)
	env.rounds = service.NewRoundService(gdb, nil, families, ledger, service.RoundOptions{
		Roller: game.SeededRoller{Seed: "api-test"},
		MaxBet: 500,
	})
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	env.family, err = families.Create(ctx, env.userIDs["an"], "Nhà An")
	require.NoError(t, err)
	_, err = families.AddMember(ctx, env.family.ID, env.userIDs["an"], "binh")
	require.NoError(t, err)

	env.router = NewRouter(Deps{DB: gdb, JWTSecret: testSecret, Families: families, Rounds: env.rounds})
	return env
}

// do sends a JSON request as user (empty for anonymous) and decodes the body
func (e *apiEnv) do(t *testing.T, method, path, user string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("Authorization", "Bearer "+e.tokens[user])
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	out := map[string]any{}
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "" {
		_ = json.Unmarshal(w.Body.Bytes(), &out)
	}
	return w.Code, out
}

func hashPassword(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}
