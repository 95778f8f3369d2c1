// Package domain contains the core types shared by the resolver, the CSV
// transformer and the API. These types describe the outcome of resolving a
// single CSV cell and are intentionally free of infrastructure concerns.
package domain
