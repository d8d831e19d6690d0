package jobs

// Job names and cron expressions, kept together for reference.
const (
	JobBlobReconcile  = "blob.reconcile"
	CronBlobReconcile = "30 3 * * *"
)
