// Package domain defines the core business entities of the vocabulary
// progress tracker and the validation rules and sentinel errors that
// accompany them. Entities are persisted through the store package and
// mutated only by the service layer.
package domain
