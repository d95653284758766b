// Package iface provides interface definitions for the core package.
// Note: Most core interfaces are defined in the main core package (runnable.go, interfaces.go)
// This file exists to satisfy the v2 package structure standard.
package iface

// This package serves as a placeholder for core interfaces.
// The main interfaces (Runnable, Container, Loader, Retriever, HealthChecker)
// are defined in the parent core package to maintain backward compatibility
// and avoid circular dependencies.
