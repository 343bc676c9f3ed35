package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/dayweave/internal/constants"
)

func TestSetAndGetConnectionString(t *testing.T) {
	gokeyring.MockInit()

	want := "postgres://alice@localhost:5432/dayweave?sslmode=disable"
	if err := SetConnectionString(want); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}
	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if got != want {
		t.Errorf("GetConnectionString() = %q, want %q", got, want)
	}
}

func TestSetConnectionStringEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("  "); err == nil {
		t.Error("SetConnectionString() with blank input should fail")
	}
}

func TestDeleteConnectionString(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("postgres://alice@localhost/dayweave"); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}
	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetConnectionString() after delete error = %v, want ErrNotFound", err)
	}
	if err := DeleteConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteConnectionString() error = %v, want ErrNotFound", err)
	}
}

func TestResolveConnectionString(t *testing.T) {
	tests := []struct {
		name   string
		env    string
		stored string
		want   string
		wantOK bool
	}{
		{name: "nothing configured"},
		{name: "keyring", stored: "postgres://k@localhost/db", want: "postgres://k@localhost/db", wantOK: true},
		{name: "env wins", env: "postgres://e@localhost/db", stored: "postgres://k@localhost/db", want: "postgres://e@localhost/db", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gokeyring.MockInit()
			t.Setenv(constants.EnvPostgresConnection, tt.env)
			if tt.stored != "" {
				if err := SetConnectionString(tt.stored); err != nil {
					t.Fatalf("SetConnectionString() failed: %v", err)
				}
			}

			got, ok, err := ResolveConnectionString()
			if err != nil {
				t.Fatalf("ResolveConnectionString() error = %v", err)
			}
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ResolveConnectionString() = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
