// Package countries keeps a countries(code, name) table in sync with the
// ISO 3166-2 list published on Wikipedia.
//
// The page is downloaded and parsed in full before the target is opened. A
// failed download, a non-2xx status or a page without any country rows
// aborts the job, because reconciling against an empty source would delete
// every stored country. The page lists countries by code; a page that is not
// in that order is rejected with orderedsync.ErrOutOfOrder.
//
// Rows are keyed by code and name, so a renamed country is removed and added
// again.
package countries
