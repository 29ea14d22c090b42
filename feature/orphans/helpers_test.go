package orphans_test

import (
	"path"
	"time"

	"content-sweeper/core/reconcile"
)

var fixedTime = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

func reconcileResult(orphanKeys ...string) reconcile.Result {
	res := reconcile.Result{TotalObjects: len(orphanKeys)}
	for _, k := range orphanKeys {
		res.Orphaned = append(res.Orphaned, reconcile.Entry{ID: path.Base(k), Key: k})
	}
	return res
}
