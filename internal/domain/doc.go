// Package domain contains the core board entities (columns and tasks) and
// their validation rules. It is independent of any specific storage or
// delivery mechanism.
package domain
