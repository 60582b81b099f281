// ABOUTME: Tests for object store selection
// ABOUTME: No network access is needed to construct the S3 client
package objectstore

import (
	"testing"

	"github.com/harper/abmodel/internal/config"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		want    string
		wantErr bool
	}{
		{"s3", config.Config{ObjectStore: "s3", S3Endpoint: "s3.amazonaws.com", S3UseSSL: true}, "*objectstore.S3", false},
		{"local", config.Config{ObjectStore: "local", LocalStoreRoot: "/data"}, "*objectstore.Local", false},
		{"unknown", config.Config{ObjectStore: "gcs"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(&tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := typeName(store); got != tt.want {
				t.Errorf("Open() = %s, want %s", got, tt.want)
			}
		})
	}
}

func typeName(s Store) string {
	switch s.(type) {
	case *S3:
		return "*objectstore.S3"
	case *Local:
		return "*objectstore.Local"
	default:
		return "unknown"
	}
}
