// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package metrics defines the Prometheus collectors of the API and the
handler serving them on GET /metrics.

Each Metrics value owns a private registry. HTTP collectors are labelled by
the matched route pattern (e.g. "GET /api/ibadah/{id}"), never by the raw
path, so ids do not blow up label cardinality.

Domain counters:

  - kehadiran_rows_upserted_total
  - ibadah_daily_limit_rejections_total
  - exports_total{format}
  - auth_attempts_total{action,outcome}
*/
package metrics
