// Package version exposes build-time version information.
//
// The variables are set with ldflags:
//
//	go build -ldflags "\
//	  -X github.com/ncobase/pagelink/version.Version=1.2.3 \
//	  -X github.com/ncobase/pagelink/version.Branch=main \
//	  -X github.com/ncobase/pagelink/version.Revision=abc123 \
//	  -X 'github.com/ncobase/pagelink/version.BuiltAt=$(date)'" ./cmd/pagewalk
//
// The HTTP client uses UserAgent to build its default User-Agent header.
package version
