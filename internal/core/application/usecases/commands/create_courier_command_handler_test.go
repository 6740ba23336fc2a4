package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCreateCourierCommand_Validation(t *testing.T) {
	t.Run("empty name", func(t *testing.T) {
		_, err := commands.NewCreateCourierCommand("", 3, []string{"midtown"})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("negative rank", func(t *testing.T) {
		_, err := commands.NewCreateCourierCommand("Dana K.", -1, []string{"midtown"})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("no service areas", func(t *testing.T) {
		_, err := commands.NewCreateCourierCommand("Dana K.", 3, nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestCreateCourierCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateCourierCommand("Dana K.", 7, []string{"Midtown", "harbor"})
	require.NoError(t, err)

	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Add", ctx, mock.AnythingOfType("*courier.Courier")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateCourierCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)

	midtown, err := kernel.NewServiceArea("midtown")
	require.NoError(t, err)
	harbor, err := kernel.NewServiceArea("harbor")
	require.NoError(t, err)

	added := courierRepo.Calls[0].Arguments.Get(1).(*courier.Courier)
	assert.True(t, added.ID().IsEqual(cmd.CourierID()))
	assert.Equal(t, "Dana K.", added.Name())
	assert.Equal(t, 7, added.Rank())
	assert.True(t, added.IsAvailable())
	assert.True(t, added.CanServe(midtown))
	assert.True(t, added.CanServe(harbor))

	courierRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateCourierCommandHandler_Handle_NotConstructedCommand(t *testing.T) {
	handler := commands.NewCreateCourierCommandHandler(new(MockCourierUoWFactory))

	err := handler.Handle(t.Context(), commands.CreateCourierCommand{})

	require.ErrorIs(t, err, commands.ErrCreateCourierCommandIsNotConstructed)
}
