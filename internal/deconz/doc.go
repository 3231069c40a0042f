// Package deconz implements the client for the deCONZ gateway's v1 REST
// API, used by the lighter CLI to inspect and control a home ZigBee
// network.
//
// This package handles:
//   - API key acquisition (the gateway's link-button authorization flow)
//   - light and group catalogs, with an in-memory cache per client
//   - light/group state changes from human-readable keyword lists
//   - group attribute and membership management
//   - scene listing, storage and recall
//   - full gateway configuration pull and push
//
// All requests go over plain HTTP against http://<host>:<port>/api/...,
// which is the only transport the gateway offers on the local network.
// Write responses are arrays of per-attribute success/error entries;
// the client reports these through its Debugf/Warnf hooks and keeps
// going, so one unreachable bulb does not abort a whole-group change.
package deconz
