// Package entities contains the core domain value objects of the bridge:
// dependency declarations contributed by extension modules, the aggregated
// startup manifest, and the classification tags that distinguish generic
// remote objects from specialized views.
package entities
