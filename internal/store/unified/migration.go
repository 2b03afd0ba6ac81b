package unified

import (
	"context"
	"fmt"
)

// MigrateLocalToCloud submits the entire local project list to the cloud
// exactly once per installation. A local flag records success, so later
// calls are no-ops. Unlike regular operations, a cloud failure here is
// surfaced: the flag stays unset and the next call retries.
func (s *Store) MigrateLocalToCloud(ctx context.Context) error {
	if s.cloud == nil {
		return nil
	}

	done, err := s.local.MigrationDone()
	if err != nil {
		return fmt.Errorf("check migration flag: %w", err)
	}
	if done {
		return nil
	}

	projects, err := s.local.GetAllProjects()
	if err != nil {
		return fmt.Errorf("read local projects: %w", err)
	}

	if len(projects) > 0 {
		if err := s.cloud.Migrate(ctx, projects); err != nil {
			return fmt.Errorf("submit migration: %w", err)
		}
	}

	if err := s.local.MarkMigrationDone(); err != nil {
		return fmt.Errorf("record migration flag: %w", err)
	}

	s.logger.Info("local data migrated to cloud", "projects", len(projects))

	return nil
}
