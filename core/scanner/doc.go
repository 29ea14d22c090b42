// Package scanner finds which stored objects are referenced by content.
//
// An object id counts as referenced only when a content file contains the exact
// string ExpectedURL(baseURL, id). There is no normalization: case, percent
// encoding, query strings and trailing slashes all have to match literally, so
// every reported reference is a true occurrence.
package scanner
