// Package config loads the optional JSON run configuration.
//
// Example:
//
//	{
//	  "on_cell_error": "skip",
//	  "depth_units": "meters",
//	  "progress": false,
//	  "summary": true,
//	  "plot_path": "harbor-contours.png",
//	  "metrics_textfile": "/var/lib/node_exporter/contour2llz.prom"
//	}
package config
