// Package mock provides a canned in-memory mailstore.ThreadSource for tests.
package mock
