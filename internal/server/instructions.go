package server

const instructions = `Tools for the Synaptik task service.

Task and project identifiers are UUIDs. Look tasks up with getAllTasks,
searchTasks or getTask before acting on them.

Dependencies are edges "task depends on other". linkTasks and unlinkTasks
take one task ID and a comma-separated list of other task IDs; each edge is
applied independently and the reply lists every edge with its own result.
unlinkTasks without dependency IDs removes all current dependencies.

Dates are ISO local date-times such as 2024-12-31T23:59:59. Date-relative
lists (today, overdue) use the server's configured timezone.

Every failure comes back as text starting with ❌.`
