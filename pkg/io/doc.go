// Package io provides JSON import and export for call graphs.
//
// # Overview
//
// The JSON format lets other tools consume a filtered call graph without
// parsing DOT, and lets a graph saved earlier be rendered again:
//
//	{
//	  "nodes": [
//	    {"id": "helper"},
//	    {"id": "main"}
//	  ],
//	  "edges": [
//	    {"from": "main", "to": "helper"}
//	  ]
//	}
//
// Nodes are written sorted by id and edges sorted by caller then callee, so
// exports of the same graph are byte-identical.
//
// # Import
//
// Use [ImportJSON] to read a graph from a file path, or [ReadJSON] to read
// from any io.Reader. Duplicate ids and edges that reference unknown nodes
// are errors that name the offending node or edge.
//
// # Export
//
// Use [WriteJSON] to write a graph to any io.Writer. The pipeline writes it
// next to the DOT output for the json format.
package io
