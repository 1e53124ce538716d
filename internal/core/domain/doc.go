// Package domain contains the core business entities for contentbridge:
// content documents, source configurations, and domain errors.
// It has no dependencies on other internal packages.
package domain
