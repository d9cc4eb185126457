// Package github is a minimal GitHub REST API client covering the pull
// request operations the review flow needs: fetching PR context and posting
// a consensus review.
package github
