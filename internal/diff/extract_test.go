package diff

import (
	"reflect"
	"testing"
)

func TestExtractFiles(t *testing.T) {
	tests := []struct {
		name string
		diff string
		want []string
	}{
		{
			name: "empty diff",
			diff: "",
			want: nil,
		},
		{
			name: "single modified file",
			diff: `diff --git a/main.go b/main.go
--- a/main.go
+++ b/main.go
@@ -1,3 +1,4 @@`,
			want: []string{"main.go"},
		},
		{
			name: "added file skips dev null",
			diff: `diff --git a/new.go b/new.go
--- /dev/null
+++ b/new.go
@@ -0,0 +1,10 @@`,
			want: []string{"new.go"},
		},
		{
			name: "deleted file skips dev null",
			diff: `diff --git a/old.go b/old.go
--- a/old.go
+++ /dev/null
@@ -1,10 +0,0 @@`,
			want: []string{"old.go"},
		},
		{
			name: "multiple files deduped in order",
			diff: `--- a/src/auth.py
+++ b/src/auth.py
@@ -1 +1 @@
--- a/src/db.py
+++ b/src/db.py
@@ -1 +1 @@`,
			want: []string{"src/auth.py", "src/db.py"},
		},
		{
			name: "hunk context lines ignored",
			diff: `--- a/a.go
+++ b/a.go
@@ -1,3 +1,3 @@
-old line
+new line
 context`,
			want: []string{"a.go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractFiles(tt.diff)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractFiles() = %v, want %v", got, tt.want)
			}
		})
	}
}
