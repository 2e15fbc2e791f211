// Package domain contains the core business entities for the reply
// drafting pipeline: historical email/response exemplars, indexed
// similarity records, extracted email fields, and pipeline artifacts.
//
// Domain types have no dependencies on adapters or external services.
package domain
