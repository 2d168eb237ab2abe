package cfg

// CoordinatesFieldName is the mesh field sampled for centreline geometry.
// Scaffolds produced by the mapping tools name it "coordinates"; override
// before export for models that use a different convention.
var CoordinatesFieldName = "coordinates"

// Marker datapoints carry their own fields, separate from the mesh
// coordinates. The names are fixed by the flatmap annotation workflow.
var MarkerCoordinatesFieldName = "marker_data_coordinates"
var MarkerNameFieldName = "marker_data_name"
var MarkerIDFieldName = "marker_data_id"

// StitchKeyScale converts endpoint coordinates to integer keys for exact
// matching. 1e12 keeps ~12 significant fractional digits for unit-scale
// models without overflowing int64 at flatmap coordinate magnitudes.
var StitchKeyScale = 1e12

// NearMissDistance is the radius used when reporting endpoints that almost
// meet a path start but did not match exactly under key quantization.
var NearMissDistance = 0.001

// Logical canvas size declared on the SVG root. The viewBox, not the canvas,
// determines what is visible.
var CanvasWidth = 1000
var CanvasHeight = 1000

// ViewBoxPlaceholder stands in for the viewport until the rendered paths have
// been measured; the real viewBox is substituted afterwards.
var ViewBoxPlaceholder = "WWW XXX YYY ZZZ"

// ViewMargin is added on every side of the measured bounding box.
var ViewMargin = 10

var UngroupedStroke = "grey"
var CentrelineStroke = "#01136e"

var MarkerRadius = 3.0
var MarkerColour = "orange"
