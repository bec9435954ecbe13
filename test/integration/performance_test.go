package integration

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kingrain94/user-management-api/internal/api"
	"github.com/kingrain94/user-management-api/internal/config"
	"github.com/kingrain94/user-management-api/internal/domain"
	"github.com/kingrain94/user-management-api/internal/gateway"
	"github.com/kingrain94/user-management-api/internal/mocks"
	"github.com/kingrain94/user-management-api/internal/service"
	"github.com/kingrain94/user-management-api/pkg/logger"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// newGraphQLRouter serves the user gateway over HTTP with a mocked profile
// store holding a single user of biz-1.
func newGraphQLRouter(t testingT, latency time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)

	users := mocks.NewUserRepository(t)
	users.On("GetByID", mock.Anything, "u-1").
		Run(func(mock.Arguments) { time.Sleep(latency) }).
		Return(&domain.User{
			ID:          "u-1",
			BusinessID:  "biz-1",
			GeneralInfo: domain.GeneralInfo{Name: "Ana", Lastname: "Lopez", Email: "ana@example.com"},
			Roles:       []string{"POS"},
			State:       true,
		}, nil).Maybe()

	repo := mocks.NewRepository(t)
	repo.On("User").Return(users)

	verifier := mocks.NewTokenVerifier(t)
	verifier.On("Verify", "Bearer bench-token").Return(&domain.AuthToken{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "owner-1"},
		BusinessID:       "biz-1",
		RealmAccess:      domain.RealmAccess{Roles: []string{"BUSINESS-OWNER"}},
	}, nil).Maybe()

	roles := &config.RoleConfig{AllowedToAssign: map[string][]string{"BUSINESS-OWNER": {"POS"}}}
	userService := service.NewUserService(repo, mocks.NewIdentityProvider(t), mocks.NewEventEmitter(t), mocks.NewHistoryScheduler(t), roles, logger.NewNop())

	adapter := gateway.NewAdapter("emigateway", mocks.NewBroker(t), verifier, 2*time.Second, logger.NewNop())
	gateway.RegisterUserManagement(adapter, userService)

	router := gin.New()
	router.POST("/graphql/:gateway/:kind/:name", api.NewGraphQLHandler(adapter).Execute)
	return router
}

var getUserPayload = []byte(`{"args":{"id":"u-1"}}`)

func getUser(router http.Handler) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, "/graphql/emigateway/query/getUser", bytes.NewBuffer(getUserPayload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer bench-token")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func BenchmarkGetUser(b *testing.B) {
	router := newGraphQLRouter(b, 0)

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if w := getUser(router); w.Code != http.StatusOK {
				b.Errorf("Expected status 200, got %d", w.Code)
			}
		}
	})
}

// TestHighConcurrencyGetUser tests the query path under high concurrent load
func TestHighConcurrencyGetUser(t *testing.T) {
	router := newGraphQLRouter(t, time.Millisecond)

	numGoroutines := 100
	requestsPerGoroutine := 10
	totalRequests := numGoroutines * requestsPerGoroutine

	var successCount int32
	var errorCount int32
	var totalLatency time.Duration
	var maxLatency time.Duration
	var minLatency time.Duration = time.Hour
	var mutex sync.Mutex

	startTime := time.Now()
	var wg sync.WaitGroup

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := 0; j < requestsPerGoroutine; j++ {
				reqStart := time.Now()
				w := getUser(router)
				reqLatency := time.Since(reqStart)

				ok := w.Code == http.StatusOK && bytes.Contains(w.Body.Bytes(), []byte(`"code":200`))

				mutex.Lock()
				totalLatency += reqLatency
				maxLatency = max(maxLatency, reqLatency)
				minLatency = min(minLatency, reqLatency)
				if ok {
					successCount++
				} else {
					errorCount++
				}
				mutex.Unlock()
			}
		}()
	}

	wg.Wait()
	totalTime := time.Since(startTime)

	avgLatency := totalLatency / time.Duration(totalRequests)
	throughput := float64(totalRequests) / totalTime.Seconds()

	t.Logf("=== High Concurrency Test Results ===")
	t.Logf("Total requests: %d", totalRequests)
	t.Logf("Successful requests: %d", successCount)
	t.Logf("Failed requests: %d", errorCount)
	t.Logf("Total time: %v", totalTime)
	t.Logf("Throughput: %.2f requests/second", throughput)
	t.Logf("Average latency: %v", avgLatency)
	t.Logf("Min latency: %v", minLatency)
	t.Logf("Max latency: %v", maxLatency)

	assert.Equal(t, int32(totalRequests), successCount, "All requests should succeed")
	assert.Equal(t, int32(0), errorCount, "No requests should fail")
	assert.True(t, avgLatency < 100*time.Millisecond, "Average latency should be under 100ms, got %v", avgLatency)
}
