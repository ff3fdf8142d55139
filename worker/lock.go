package worker

import (
	"encoding/json"
	"errors"
	"fmt"
	"greenroute-backend/models"
	"os"
	"path/filepath"
	"time"
)

// ErrLockHeld is returned when another owner holds an unexpired lock
var ErrLockHeld = errors.New("lock held by another worker")

// LockManager guards the daily check with a lock file so two local instances never run it together
type LockManager struct {
	LockFilePath string
	LockTimeout  time.Duration
	now          func() time.Time
}

func NewLockManager(lockPath string, timeout time.Duration) *LockManager {
	return &LockManager{
		LockFilePath: lockPath,
		LockTimeout:  timeout,
		now:          time.Now,
	}
}

func (lm *LockManager) AcquireLock(ownerID string) (*models.LockInfo, error) {
	if err := os.MkdirAll(filepath.Dir(lm.LockFilePath), 0755); err != nil {
		return nil, err
	}
	if existingLock, err := lm.readLockFile(); err == nil {
		if lm.now().Before(existingLock.ExpiresAt) {
			if existingLock.Owner == ownerID {
				return lm.extendLock(existingLock, ownerID)
			}
			return nil, fmt.Errorf("%w: %s until %s", ErrLockHeld, existingLock.Owner, existingLock.ExpiresAt.Format(time.RFC3339))
		}
	}

	now := lm.now()
	lockInfo := &models.LockInfo{
		ID:         fmt.Sprintf("weather-lock-%d", now.UnixNano()),
		Owner:      ownerID,
		AcquiredAt: now,
		ExpiresAt:  now.Add(lm.LockTimeout),
	}

	if err := lm.writeLockFile(lockInfo); err != nil {
		return nil, fmt.Errorf("failed to create lock file: %w", err)
	}
	return lockInfo, nil
}

func (lm *LockManager) readLockFile() (*models.LockInfo, error) {
	data, err := os.ReadFile(lm.LockFilePath)
	if err != nil {
		return nil, err
	}

	var lockInfo models.LockInfo
	if err := json.Unmarshal(data, &lockInfo); err != nil {
		return nil, fmt.Errorf("failed to parse lock file: %w", err)
	}

	return &lockInfo, nil
}

func (lm *LockManager) extendLock(existingLock *models.LockInfo, ownerID string) (*models.LockInfo, error) {
	extendedLock := &models.LockInfo{
		ID:         existingLock.ID,
		Owner:      ownerID,
		AcquiredAt: existingLock.AcquiredAt,
		ExpiresAt:  lm.now().Add(lm.LockTimeout),
	}

	if err := lm.writeLockFile(extendedLock); err != nil {
		return nil, fmt.Errorf("failed to extend lock: %w", err)
	}
	return extendedLock, nil
}

func (lm *LockManager) writeLockFile(lockInfo *models.LockInfo) error {
	data, err := json.MarshalIndent(lockInfo, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize lock info: %w", err)
	}
	tempFile := lm.LockFilePath + ".tmp"

	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp lock file: %w", err)
	}
	if err := os.Rename(tempFile, lm.LockFilePath); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temp lock file: %w", err)
	}
	return nil
}

// CleanupExpiredLocks removes an expired lock file
func (lm *LockManager) CleanupExpiredLocks() error {
	lockInfo, err := lm.readLockFile()
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if lm.now().After(lockInfo.ExpiresAt) {
		return os.Remove(lm.LockFilePath)
	}
	return nil
}

// ReleaseLock removes the lock file if lockInfo's owner still holds it
func (lm *LockManager) ReleaseLock(lockInfo *models.LockInfo) error {
	currentLock, err := lm.readLockFile()
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read lock file: %w", err)
	}

	if currentLock.Owner != lockInfo.Owner {
		return fmt.Errorf("cannot release lock owned by %s", currentLock.Owner)
	}

	if err := os.Remove(lm.LockFilePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}
