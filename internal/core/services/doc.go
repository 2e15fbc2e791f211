// Package services implements the application core: corpus ingestion,
// similar-example retrieval, style drafting, response composition, and
// the pipeline that sequences them for one inbound email.
package services
