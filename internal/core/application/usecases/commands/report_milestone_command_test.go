package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReportMilestoneCommand_Success(t *testing.T) {
	orderID := kernel.NewUUID()

	cmd, err := commands.NewReportMilestoneCommand(orderID, order.PickedUp, order.ActorCourier, "")

	require.NoError(t, err)
	assert.NoError(t, cmd.Validate())
	assert.True(t, cmd.OrderID().IsEqual(orderID))
	assert.Equal(t, order.PickedUp, cmd.Milestone())
	assert.Equal(t, order.ActorCourier, cmd.Actor())
	assert.Empty(t, cmd.TrackingNumber())
}

func TestNewReportMilestoneCommand_CarriesTrackingNumber(t *testing.T) {
	cmd, err := commands.NewReportMilestoneCommand(
		kernel.NewUUID(), order.Dispatched, order.ActorVendor, "1Z999AA10123456784",
	)

	require.NoError(t, err)
	assert.Equal(t, "1Z999AA10123456784", cmd.TrackingNumber())
}

func TestNewReportMilestoneCommand_RejectsNonDeliveryMilestones(t *testing.T) {
	for _, milestone := range []order.Milestone{order.Created, order.Unassignable, order.Unknown} {
		t.Run(milestone.String(), func(t *testing.T) {
			_, err := commands.NewReportMilestoneCommand(
				kernel.NewUUID(), milestone, order.ActorCourier, "",
			)
			require.Error(t, err)
		})
	}
}

func TestNewReportMilestoneCommand_RejectsUnknownActor(t *testing.T) {
	_, err := commands.NewReportMilestoneCommand(
		kernel.NewUUID(), order.PickedUp, order.ActorUnknown, "",
	)

	require.Error(t, err)
}
