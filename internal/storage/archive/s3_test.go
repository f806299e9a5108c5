// internal/storage/archive/s3_test.go
package archive

import "testing"

func TestS3Storage_ImplementsStorage(t *testing.T) {
	var _ Storage = (*S3Storage)(nil)
}

func TestS3Storage_Key(t *testing.T) {
	tests := []struct {
		prefix string
		key    string
		want   string
	}{
		{"", "results/DEMO/run.json", "results/DEMO/run.json"},
		{"lockup", "results/DEMO/run.json", "lockup/results/DEMO/run.json"},
		{"/lockup/", "results/DEMO/run.json", "lockup/results/DEMO/run.json"},
	}

	for _, tt := range tests {
		s := NewS3(S3Config{Bucket: "b", Region: "us-east-1", Prefix: tt.prefix})
		if got := s.key(tt.key); got != tt.want {
			t.Errorf("key(%q) with prefix %q = %q, want %q", tt.key, tt.prefix, got, tt.want)
		}
		if got := s.relative(s.key(tt.key)); got != tt.key {
			t.Errorf("relative(key(%q)) = %q", tt.key, got)
		}
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"a.json":    "application/json",
		"a.csv":     "text/csv",
		"a.parquet": "application/octet-stream",
	}
	for key, want := range tests {
		if got := contentType(key); got != want {
			t.Errorf("contentType(%q) = %q, want %q", key, got, want)
		}
	}
}
