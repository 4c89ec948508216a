package qdrant

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/mock/gomock"

	"github.com/Aleph-Alpha/searchspec/pkg/search"
)

// QdrantContainer represents a Qdrant container for testing
type QdrantContainer struct {
	testcontainers.Container
	Host string
	Port string
}

// setupQdrantContainer sets up a Qdrant container for testing
func setupQdrantContainer(ctx context.Context) (*QdrantContainer, error) {
	// Get a random free port
	port, err := getFreePort()
	if err != nil {
		return nil, fmt.Errorf("could not get free port: %w", err)
	}

	portStr := fmt.Sprintf("%d", port)
	portBindings := nat.PortMap{
		"6334/tcp": []nat.PortBinding{{HostPort: portStr}},
	}

	// Define container request
	req := testcontainers.ContainerRequest{
		Image: "qdrant/qdrant:v1.11.0",
		Env: map[string]string{
			"QDRANT__SERVICE__GRPC_PORT": "6334",
		},
		ExposedPorts: []string{"6334/tcp"},
		HostConfigModifier: func(cfg *container.HostConfig) {
			cfg.PortBindings = portBindings
		},
		WaitingFor: wait.ForListeningPort("6334/tcp").WithStartupTimeout(60 * time.Second),
	}

	// Start container
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start qdrant container: %w", err)
	}

	// Get host
	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get host: %w", err)
	}

	// Get mapped port
	mappedPort, err := container.MappedPort(ctx, "6334")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get mapped port: %w", err)
	}

	portStr = mappedPort.Port()

	// Wait for Qdrant to be fully ready
	err = waitForQdrantReady(host, portStr, 30*time.Second)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("qdrant container not ready: %w", err)
	}

	return &QdrantContainer{
		Container: container,
		Host:      host,
		Port:      portStr,
	}, nil
}

// getFreePort gets a free port from the OS
func getFreePort() (int, error) {
	addr, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	defer func(addr net.Listener) {
		err := addr.Close()
		if err != nil {
			fmt.Printf("Failed to close listener: %v", err)
		}
	}(addr)

	return addr.Addr().(*net.TCPAddr).Port, nil
}

// waitForQdrantReady attempts to connect to Qdrant until it's ready or times out
func waitForQdrantReady(host, port string, timeout time.Duration) error {
	startTime := time.Now()
	for {
		if time.Since(startTime) > timeout {
			return fmt.Errorf("timed out waiting for Qdrant to be ready after %s", timeout)
		}

		// Try to establish a TCP connection
		conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, port), 2*time.Second)
		if err == nil {
			_ = conn.Close()
			// Additional wait to ensure the service is fully ready
			time.Sleep(2 * time.Second)
			return nil
		}

		time.Sleep(500 * time.Millisecond)
	}
}

// TestMain sets up the testing environment
func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}

func newIntegrationLogger(t *testing.T, ctrl *gomock.Controller) *MockLogger {
	t.Helper()

	logger := NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	logger.EXPECT().Debug(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	logger.EXPECT().Fatal(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(msg string, err error, fields ...map[string]interface{}) {
			t.Logf("unexpected fatal log: %s (%v)", msg, err)
		}).AnyTimes()

	return logger
}

// osVector keeps similarity order aligned with ascending ids: the query
// vector is closest to id 1 and furthest from id 10, so filtered result
// order is deterministic.
func osVector(id uint64) []float32 {
	return []float32{1, float32(id) / 10, 0, 0}
}

var osQueryVector = []float32{1, 0, 0, 0}

func seedPoints(t *testing.T) []Point {
	t.Helper()

	catalog := []struct {
		id       uint64
		name     string
		kernel   string
		released string
		usages   int
		country  string
	}{
		{1, "Ubuntu", "5.13", "23-09-2021 10:00:00", 2000, "GB"},
		{2, "Debian", "5.10", "14-08-2021 10:00:00", 1500, "US"},
		{3, "CentOS", "4.18", "24-09-2019 10:00:00", 180, "US"},
		{4, "CentOS", "5.8", "03-12-2020 10:00:00", 120, "US"},
		{5, "Fedora", "5.14", "02-11-2021 10:00:00", 350, "US"},
		{6, "openSUSE", "5.3", "12-11-2019 10:00:00", 230, "DE"},
		{7, "Arch Linux", "5.13", "01-07-2021 10:00:00", 800, "CA"},
		{8, "Manjaro", "5.8", "03-09-2020 10:00:00", 90, "DE"},
		{9, "Slackware", "4.19", "01-07-2016 10:00:00", 75, "US"},
		{10, "Red Hat", "4.18", "07-05-2019 10:00:00", 250, "US"},
	}

	points := make([]Point, 0, len(catalog))
	for _, row := range catalog {
		released, err := time.Parse(search.DateLayout, row.released)
		if err != nil {
			t.Fatalf("failed to parse release date %q: %v", row.released, err)
		}

		points = append(points, Point{
			ID:     row.id,
			Vector: osVector(row.id),
			Payload: map[string]interface{}{
				"name":        row.name,
				"kernel":      row.kernel,
				"releaseDate": released.UTC().Format(time.RFC3339),
				"usages":      row.usages,
				"maintainer": map[string]interface{}{
					"company": map[string]interface{}{"country": row.country},
				},
			},
		})
	}

	return points
}

func hitIDs(hits []ScoredPoint) []string {
	ids := make([]string, 0, len(hits))
	for _, hit := range hits {
		ids = append(ids, hit.ID)
	}
	return ids
}

// TestQdrantWithFXModule wires the client through the FX module, seeds
// the reference catalog and runs filtered similarity searches over it.
func TestQdrantWithFXModule(t *testing.T) {
	// Skip if running in short mode
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	containerInstance, err := setupQdrantContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := containerInstance.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	t.Logf("Using Qdrant on %s:%s", containerInstance.Host, containerInstance.Port)

	portNum, err := strconv.Atoi(containerInstance.Port)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var client *Client

	app := fxtest.New(t,
		fx.Provide(
			func() *Config {
				return &Config{
					Endpoint:           containerInstance.Host,
					Port:               portNum,
					Collection:         "operating_systems",
					VectorSize:         4,
					CheckCompatibility: false,
					Timeout:            10 * time.Second,
				}
			},
			func() Logger { return newIntegrationLogger(t, ctrl) },
		),
		FXModule,
		fx.Populate(&client),
	)

	err = app.Start(ctx)
	require.NoError(t, err)

	require.NotNil(t, client)
	require.NotNil(t, client.api)
	require.NoError(t, client.healthCheck())

	// OnStart bootstrapped the collection; a second ensure is idempotent.
	require.NoError(t, client.EnsureCollection(ctx))

	spec := search.NewSpecification(osPayloadSchema(), nil)

	require.NoError(t, client.Upsert(ctx, seedPoints(t)))
	time.Sleep(1 * time.Second) // Allow time for indexing

	t.Run("CollectionInfo", func(t *testing.T) {
		info, err := client.GetCollection(ctx)
		require.NoError(t, err)
		assert.Equal(t, "operating_systems", info.Name)
		assert.Equal(t, uint64(10), info.Points)
		assert.Equal(t, uint64(4), info.VectorSize)
		assert.Equal(t, "Cosine", info.Distance)

		collections, err := client.ListCollections(ctx)
		require.NoError(t, err)
		assert.Contains(t, collections, "operating_systems")
	})

	t.Run("SearchEqualIgnoresSorts", func(t *testing.T) {
		hits, err := client.SearchPoints(ctx, osQueryVector, spec, search.Request{
			Filters: []search.FilterRequest{
				{Key: "name", Operator: search.OperatorEqual, FieldType: search.FieldTypeString, Value: "CentOS"},
			},
			Sorts: []search.SortRequest{
				{Key: "releaseDate", Direction: search.SortAsc},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"3", "4"}, hitIDs(hits))
	})

	t.Run("SearchInSet", func(t *testing.T) {
		hits, err := client.SearchPoints(ctx, osQueryVector, spec, search.Request{
			Filters: []search.FilterRequest{
				{Key: "kernel", Operator: search.OperatorIn, FieldType: search.FieldTypeString, Values: []interface{}{"5.13", "5.8"}},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "4", "7", "8"}, hitIDs(hits))
	})

	t.Run("SearchNumericRange", func(t *testing.T) {
		hits, err := client.SearchPoints(ctx, osQueryVector, spec, search.Request{
			Filters: []search.FilterRequest{
				{Key: "usages", Operator: search.OperatorBetween, FieldType: search.FieldTypeInteger, Value: 100, ValueTo: 250},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"3", "4", "6", "10"}, hitIDs(hits))
	})

	t.Run("SearchDateRange", func(t *testing.T) {
		hits, err := client.SearchPoints(ctx, osQueryVector, spec, search.Request{
			Filters: []search.FilterRequest{
				{
					Key:       "releaseDate",
					Operator:  search.OperatorBetween,
					FieldType: search.FieldTypeDate,
					Value:     "01-01-2021 00:00:00",
					ValueTo:   "31-12-2021 23:59:59",
				},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2", "5", "7"}, hitIDs(hits))
	})

	t.Run("SearchNotEqual", func(t *testing.T) {
		hits, err := client.SearchPoints(ctx, osQueryVector, spec, search.Request{
			Filters: []search.FilterRequest{
				{Key: "kernel", Operator: search.OperatorNotEqual, FieldType: search.FieldTypeString, Value: "4.18"},
			},
		})
		require.NoError(t, err)

		ids := hitIDs(hits)
		assert.Len(t, ids, 8)
		assert.NotContains(t, ids, "3")
		assert.NotContains(t, ids, "10")
	})

	t.Run("SearchNestedPayloadKey", func(t *testing.T) {
		hits, err := client.SearchPoints(ctx, osQueryVector, spec, search.Request{
			Filters: []search.FilterRequest{
				{Key: "maintainer.company.country", Operator: search.OperatorEqual, FieldType: search.FieldTypeString, Value: "DE"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"6", "8"}, hitIDs(hits))
	})

	t.Run("SearchPaginates", func(t *testing.T) {
		firstPage, size := 0, 2
		req := search.Request{
			Filters: []search.FilterRequest{
				{Key: "usages", Operator: search.OperatorBetween, FieldType: search.FieldTypeInteger, Value: 100, ValueTo: 250},
			},
			Page: &firstPage,
			Size: &size,
		}

		hits, err := client.SearchPoints(ctx, osQueryVector, spec, req)
		require.NoError(t, err)
		assert.Equal(t, []string{"3", "4"}, hitIDs(hits))

		secondPage := 1
		req.Page = &secondPage
		hits, err = client.SearchPoints(ctx, osQueryVector, spec, req)
		require.NoError(t, err)
		assert.Equal(t, []string{"6", "10"}, hitIDs(hits))

		thirdPage := 2
		req.Page = &thirdPage
		hits, err = client.SearchPoints(ctx, osQueryVector, spec, req)
		require.NoError(t, err)
		assert.Empty(t, hits)
	})

	t.Run("PayloadRoundTrip", func(t *testing.T) {
		hits, err := client.SearchPoints(ctx, osQueryVector, spec, search.Request{
			Filters: []search.FilterRequest{
				{Key: "name", Operator: search.OperatorEqual, FieldType: search.FieldTypeString, Value: "Ubuntu"},
			},
		})
		require.NoError(t, err)
		require.Len(t, hits, 1)

		hit := hits[0]
		assert.Equal(t, "1", hit.ID)
		assert.Greater(t, hit.Score, float32(0.9))
		assert.Equal(t, "Ubuntu", hit.Payload["name"])
		assert.Equal(t, "5.13", hit.Payload["kernel"])
		assert.Equal(t, int64(2000), hit.Payload["usages"])

		maintainer, ok := hit.Payload["maintainer"].(map[string]interface{})
		require.True(t, ok, "expected nested maintainer payload")
		company, ok := maintainer["company"].(map[string]interface{})
		require.True(t, ok, "expected nested company payload")
		assert.Equal(t, "GB", company["country"])
	})

	t.Run("DeletePoints", func(t *testing.T) {
		require.NoError(t, client.Delete(ctx, []uint64{9, 10}))

		hits, err := client.SearchPoints(ctx, osQueryVector, spec, search.Request{})
		require.NoError(t, err)
		assert.Len(t, hits, 8)

		// Empty operations are no-ops
		assert.NoError(t, client.Upsert(ctx, nil))
		assert.NoError(t, client.Delete(ctx, nil))
	})

	// Stop the application
	require.NoError(t, app.Stop(ctx))
}

// TestQdrantClientDirect constructs the client without FX and exercises
// configuration error paths.
func TestQdrantClientDirect(t *testing.T) {
	// Skip if running in short mode
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	containerInstance, err := setupQdrantContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := containerInstance.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	portNum, err := strconv.Atoi(containerInstance.Port)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := FromEndpoint(containerInstance.Host).
		WithPort(portNum).
		WithCollection("direct_ops").
		WithVectorSize(4).
		WithCompatibilityCheck(false)

	client, err := NewQdrantClient(QdrantParams{Config: cfg, Logger: newIntegrationLogger(t, ctrl)})
	require.NoError(t, err)
	require.NotNil(t, client)
	defer client.Close()

	require.NoError(t, client.EnsureCollection(ctx))

	t.Run("SearchOnMissingCollection", func(t *testing.T) {
		original := client.cfg.Collection
		client.cfg.Collection = "missing_collection"
		defer func() { client.cfg.Collection = original }()

		spec := search.NewSpecification(osPayloadSchema(), nil)
		_, err := client.SearchPoints(ctx, osQueryVector, spec, search.Request{})
		assert.Error(t, err)
	})

	t.Run("EnsureCollectionRequiresName", func(t *testing.T) {
		original := client.cfg.Collection
		client.cfg.Collection = ""
		defer func() { client.cfg.Collection = original }()

		err := client.EnsureCollection(ctx)
		assert.Error(t, err)
	})

	t.Run("EnsureCollectionRequiresVectorSize", func(t *testing.T) {
		originalName := client.cfg.Collection
		originalSize := client.cfg.VectorSize
		client.cfg.Collection = "unsized_collection"
		client.cfg.VectorSize = 0
		defer func() {
			client.cfg.Collection = originalName
			client.cfg.VectorSize = originalSize
		}()

		err := client.EnsureCollection(ctx)
		assert.Error(t, err)
	})

	t.Run("InvalidEndpoint", func(t *testing.T) {
		bad := FromEndpoint("invalid-host-that-does-not-resolve").
			WithCompatibilityCheck(false).
			WithTimeout(2 * time.Second)

		_, err := NewQdrantClient(QdrantParams{Config: bad, Logger: newIntegrationLogger(t, ctrl)})
		assert.Error(t, err)
	})
}
