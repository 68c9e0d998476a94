package healthcheck

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func fixed(status Status, message string) *CustomChecker {
	return NewCustomChecker("fixed", func(context.Context) (Status, string, interface{}) {
		return status, message, nil
	})
}

// HealthCheckTestSuite covers aggregation, caching and the gin handlers
type HealthCheckTestSuite struct {
	suite.Suite
	hc     *HealthCheck
	router *gin.Engine
}

func (suite *HealthCheckTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.hc = New("1.2.3", zap.NewNop())
	suite.hc.SetCacheTTL(0)

	suite.router = gin.New()
	suite.router.GET("/health", suite.hc.Handler())
	suite.router.GET("/health/live", suite.hc.LivenessHandler())
	suite.router.GET("/health/ready", suite.hc.ReadinessHandler())
}

func (suite *HealthCheckTestSuite) get(path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func (suite *HealthCheckTestSuite) TestAggregatesWorstStatus() {
	suite.hc.Register("b-catalogue", fixed(StatusDegraded, "empty catalogue"))
	suite.hc.Register("a-database", fixed(StatusHealthy, ""))

	response := suite.hc.Check(context.Background())

	assert.Equal(suite.T(), StatusDegraded, response.Status)
	assert.Equal(suite.T(), "1.2.3", response.Version)
	require.Len(suite.T(), response.Checks, 2)
	assert.Equal(suite.T(), "a-database", response.Checks[0].Name)
	assert.Equal(suite.T(), "b-catalogue", response.Checks[1].Name)

	suite.hc.Register("c-redis", fixed(StatusUnhealthy, "connection refused"))
	assert.Equal(suite.T(), StatusUnhealthy, suite.hc.Check(context.Background()).Status)
}

func (suite *HealthCheckTestSuite) TestCachesResponses() {
	var calls atomic.Int32
	suite.hc.Register("counting", NewCustomChecker("counting", func(context.Context) (Status, string, interface{}) {
		calls.Add(1)
		return StatusHealthy, "", nil
	}))
	suite.hc.SetCacheTTL(time.Minute)

	suite.hc.Check(context.Background())
	suite.hc.Check(context.Background())

	assert.Equal(suite.T(), int32(1), calls.Load())
}

func (suite *HealthCheckTestSuite) TestHandlers() {
	suite.hc.Register("database", fixed(StatusHealthy, ""))

	rec := suite.get("/health")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(suite.T(), "healthy", body["status"])
	assert.Contains(suite.T(), body, "total_duration_ms")

	assert.Equal(suite.T(), http.StatusOK, suite.get("/health/ready").Code)
	assert.Equal(suite.T(), http.StatusOK, suite.get("/health/live").Code)

	suite.hc.Register("redis", fixed(StatusUnhealthy, "down"))
	assert.Equal(suite.T(), http.StatusServiceUnavailable, suite.get("/health").Code)
	assert.Equal(suite.T(), http.StatusServiceUnavailable, suite.get("/health/ready").Code)
	assert.Equal(suite.T(), http.StatusOK, suite.get("/health/live").Code)
}

func (suite *HealthCheckTestSuite) TestDegradedIsNotReady() {
	suite.hc.Register("catalogue", fixed(StatusDegraded, "empty"))

	assert.Equal(suite.T(), http.StatusOK, suite.get("/health").Code)
	assert.Equal(suite.T(), http.StatusServiceUnavailable, suite.get("/health/ready").Code)
}

func TestHealthCheckTestSuite(t *testing.T) {
	suite.Run(t, new(HealthCheckTestSuite))
}

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	return sqlDB
}

func TestDatabaseChecker(t *testing.T) {
	sqlDB := openSQLite(t)
	checker := NewDatabaseChecker(sqlDB)

	check := checker.Check(context.Background())
	assert.Equal(t, StatusHealthy, check.Status)
	assert.Contains(t, check.Metadata, "open_conns")

	require.NoError(t, sqlDB.Close())
	check = checker.Check(context.Background())
	assert.Equal(t, StatusUnhealthy, check.Status)
	assert.NotEmpty(t, check.Message)
}

func TestCheck_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Check{Name: "database", Status: StatusHealthy, Duration: 1500 * time.Millisecond})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 1500.0, decoded["duration_ms"])
	assert.Equal(t, "database", decoded["name"])
}
