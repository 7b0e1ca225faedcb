// Package hbnb is the composition root of a small object store.
//
// Records (users, places, cities and friends) live in one in-memory registry
// keyed by "<Type>.<id>". The whole registry is written to a single JSON file
// on every save and rebuilt into typed records on start.
//
// Usage:
//
//	s, err := hbnb.Open("file.json", hbnb.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//
//	u := models.NewUser(s)
//	u.Email = "ana@example.com"
//	err = u.Save(s)
package hbnb
