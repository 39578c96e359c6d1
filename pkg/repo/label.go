package repo

import (
	"context"

	"go.uber.org/zap"

	"github.com/SmdhMdep/iot-status-api/pkg/apperrors"
	"github.com/SmdhMdep/iot-status-api/pkg/common"
	"github.com/SmdhMdep/iot-status-api/pkg/fleet"
	"github.com/SmdhMdep/iot-status-api/pkg/ledger"
	"github.com/SmdhMdep/iot-status-api/pkg/models"
)

// UpdateDeviceLabel writes a device's label to the ledger and keeps the fleet
// index's deactivated group in sync with it. A nil newLabel clears the label.
//
// The ledger write is conditional on the label the device had when it was
// read, so two concurrent updates cannot silently overwrite each other. When
// the fleet group update fails afterwards, the ledger write is rolled back
// with a second conditional write before the error is reported.
func (r *Repo) UpdateDeviceLabel(ctx context.Context, name string, newLabel *models.DeviceLabel) error {
	if !fleet.DeviceNameRegex.MatchString(name) {
		return apperrors.InvalidArgument("name must match the regex: " + fleet.DeviceNameRegex.String())
	}

	logger := common.GetLoggerWith(
		common.LoggerNameRepo,
		zap.String(common.LoggerFieldRepoCategory, common.LoggerCategoryRepoLabel),
		zap.String("device", name),
	)

	record, err := r.Ledger.FindDevice(ctx, nil, nil, name)
	if err != nil {
		return err
	}
	if record == nil {
		return apperrors.NotFound("device with name " + name + " is not registered")
	}

	oldLabel := record.Label
	var newValue *string
	if newLabel != nil {
		value := string(*newLabel)
		newValue = &value
	}

	if err := r.Ledger.UpdateLabel(ctx, ledger.UpdateLabelInput{
		Name:             name,
		NewLabel:         newValue,
		ExpectedLabel:    oldLabel,
		HasExpectedLabel: true,
	}); err != nil {
		return err
	}

	wasDeactivated := oldLabel != nil && *oldLabel == string(models.DeviceLabelDeactivated)
	isDeactivated := newLabel != nil && *newLabel == models.DeviceLabelDeactivated
	if wasDeactivated == isDeactivated {
		return nil
	}

	if err := r.Fleet.UpdateActiveState(ctx, name, !isDeactivated); err != nil {
		return r.compensateLabelUpdate(ctx, logger, name, oldLabel, newValue, err)
	}
	return nil
}

// compensateLabelUpdate restores the ledger label after a failed fleet group
// update. The restore is conditional on the label still holding the value
// this update wrote, so a concurrent update that won in the meantime is left
// alone.
func (r *Repo) compensateLabelUpdate(
	ctx context.Context, logger *zap.Logger, name string, oldLabel, newValue *string, cause error,
) error {
	if restoreErr := r.Ledger.UpdateLabel(ctx, ledger.UpdateLabelInput{
		Name:             name,
		NewLabel:         oldLabel,
		ExpectedLabel:    newValue,
		HasExpectedLabel: true,
	}); restoreErr != nil {
		logger.Error("label stores are inconsistent: fleet index update failed and the ledger label could not be restored",
			zap.NamedError("fleetError", cause), zap.Error(restoreErr))
		return apperrors.Internal("failed to update device label", cause)
	}

	if apperrors.IsKind(cause, apperrors.KindNotFound) {
		// the device was registered but never provisioned, so it has no
		// fleet entry to move between groups
		return apperrors.InvalidArgument("cannot deactivate unprovisioned device")
	}
	return apperrors.Internal("failed to update device label", cause)
}
