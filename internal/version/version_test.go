package version

import "testing"

func TestBanner(t *testing.T) {
	oldV, oldSHA, oldTime := Version, GitSHA, BuildTime
	t.Cleanup(func() { Version, GitSHA, BuildTime = oldV, oldSHA, oldTime })

	Version, GitSHA, BuildTime = "v0.3.1", "abc1234", "2024-05-01T10:00:00Z"
	want := "contour2llz v0.3.1 (abc1234, built 2024-05-01T10:00:00Z)"
	if got := Banner("contour2llz"); got != want {
		t.Errorf("Banner() = %q, want %q", got, want)
	}
}
