package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"optionlab/internal/testutil"
)

func TestHealthHandler_Health(t *testing.T) {
	t.Run("returns 200 when database answers", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		r := gin.New()
		r.GET("/api/health", NewHealthHandler(db).Health)

		rec := doRequest(r, http.MethodGet, "/api/health", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if parseJSON(t, rec)["status"] != "ok" {
			t.Errorf("unexpected body %s", rec.Body.String())
		}
	})

	t.Run("returns 503 when database is closed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		sqlDB, err := db.DB()
		if err != nil {
			t.Fatalf("failed to get sql.DB: %v", err)
		}
		_ = sqlDB.Close()

		r := gin.New()
		r.GET("/api/health", NewHealthHandler(db).Health)

		rec := doRequest(r, http.MethodGet, "/api/health", "")

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
	})
}
