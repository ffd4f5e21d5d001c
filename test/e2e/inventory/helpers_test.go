//go:build e2e

package inventory_test

import (
	"context"
	"fmt"
	"maps"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aussiebroadwan/inventory/pkg/authsdk"
)

/*
 * Container setup and shared assertions for the inventory service
 * end-to-end tests. Run with: go test -tags e2e ./test/e2e/...
 */

const (
	testImageName = "inventory-test:latest"
	postgresImage = "postgres:16-alpine"

	testPassword = "correct-horse-battery"
)

// relaxedRateLimits keeps rapid test traffic under the limiter.
var relaxedRateLimits = map[string]string{
	"RATELIMIT_STRICT_REQUESTS":   "1000",
	"RATELIMIT_STRICT_WINDOW_SEC": "60",
	"RATELIMIT_STRICT_BURST":      "1000",
	"RATELIMIT_MODERATE_REQUESTS": "1000",
	"RATELIMIT_MODERATE_BURST":    "1000",
}

// TestMain builds the service image once before all tests and removes it
// afterwards.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building inventory Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up inventory Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/inventory/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	cmd := exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // image might not exist
}

type serviceOptions struct {
	env      map[string]string
	networks []string
}

// startService runs the inventory image and returns its base URL. The
// container is terminated when the test ends.
func startService(t *testing.T, opts serviceOptions) string {
	t.Helper()
	ctx := context.Background()

	env := map[string]string{
		"INVENTORY_ISSUER": "inventory-e2e",
		"ENV":              "test",
		"LOG_LEVEL":        "info",
		"LOG_FORMAT":       "json",
	}
	maps.Copy(env, relaxedRateLimits)
	maps.Copy(env, opts.env)

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        testImageName,
			ExposedPorts: []string{"8080/tcp"},
			Env:          env,
			Networks:     opts.networks,
			WaitingFor: wait.ForHTTP("/readyz").
				WithPort("8080/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
}

// setupSQLiteService starts the service on its default sqlite store.
func setupSQLiteService(t *testing.T, env map[string]string) string {
	t.Helper()
	return startService(t, serviceOptions{env: env})
}

// setupPostgresService starts Postgres and the service on a shared network.
func setupPostgresService(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	net, err := network.New(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = net.Remove(ctx) })

	pg, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:          postgresImage,
			ExposedPorts:   []string{"5432/tcp"},
			Networks:       []string{net.Name},
			NetworkAliases: map[string][]string{net.Name: {"db"}},
			Env: map[string]string{
				"POSTGRES_USER":     "inventory",
				"POSTGRES_PASSWORD": "inventory",
				"POSTGRES_DB":       "inventory",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pg.Terminate(ctx); err != nil {
			t.Logf("failed to terminate postgres: %v", err)
		}
	})

	return startService(t, serviceOptions{
		networks: []string{net.Name},
		env: map[string]string{
			"INVENTORY_DATABASE_DRIVER": "postgres",
			"INVENTORY_DATABASE_DSN":    "postgres://inventory:inventory@db:5432/inventory?sslmode=disable",
		},
	})
}

// newSession returns a coordinator over an in-memory token store.
func newSession(baseURL string) *authsdk.Session {
	return authsdk.NewSession(authsdk.NewClient(baseURL), authsdk.NewMemoryStore())
}

func assertHealthy(t *testing.T, health *authsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
