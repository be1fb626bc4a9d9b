package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MintCofee/tabshare/internal/transport"
)

func TestStructCollectsEveryViolation(t *testing.T) {
	req := transport.CreateTabRequest{
		Title:      "H",
		Artist:     "X",
		Difficulty: "impossible",
		Genre:      "polka",
		TabContent: "short",
	}

	msgs := Struct(req)
	require.Len(t, msgs, 5)
	require.Contains(t, msgs, "title must be at least 2 characters")
	require.Contains(t, msgs, "tabContent must be at least 10 characters")
}

func TestStructValidPayload(t *testing.T) {
	capo := 3
	req := transport.CreateTabRequest{
		Title:      "Wonderwall",
		Artist:     "Oasis",
		Difficulty: "beginner",
		Genre:      "rock",
		TabContent: "e|---3---3---3---|",
		Capo:       &capo,
	}
	require.Empty(t, Struct(req))
}

func TestPatchSkipsAbsentFields(t *testing.T) {
	require.Empty(t, Struct(transport.PatchTabRequest{}))

	bad := "x"
	msgs := Struct(transport.PatchTabRequest{Title: &bad})
	require.Len(t, msgs, 1)
}

func TestCapoRange(t *testing.T) {
	for capo, wantErr := range map[int]bool{0: false, 12: false, -1: true, 13: true} {
		c := capo
		req := transport.CreateTabRequest{
			Title:      "Wonderwall",
			Artist:     "Oasis",
			Difficulty: "beginner",
			Genre:      "rock",
			TabContent: "e|---3---3---3---|",
			Capo:       &c,
		}
		msgs := Struct(req)
		if wantErr {
			require.Len(t, msgs, 1, "capo=%d", capo)
		} else {
			require.Empty(t, msgs, "capo=%d", capo)
		}
	}
}

func TestSongYearBounds(t *testing.T) {
	mk := func(year int) transport.CreateSongRequest {
		y := year
		return transport.CreateSongRequest{Title: "Wonderwall", Artist: "Oasis", Year: &y}
	}

	require.Empty(t, Struct(mk(1995)))
	require.Empty(t, Struct(mk(time.Now().Year())))
	require.NotEmpty(t, Struct(mk(1899)))
	require.NotEmpty(t, Struct(mk(time.Now().Year()+1)))
}

func TestRegisterRules(t *testing.T) {
	msgs := Struct(transport.RegisterRequest{Username: "ab", Email: "nope", Password: "short"})
	require.Len(t, msgs, 3)

	require.Empty(t, Struct(transport.RegisterRequest{Username: "alice", Email: "a@x.com", Password: "secret1"}))
}
