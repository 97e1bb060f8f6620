package order

// OrderState implements the state pattern for order lifecycle transitions.
type OrderState interface {
	Status() Status
	OnPurchase(o *Order) (OrderState, error)
	OnSurcharge(o *Order) (OrderState, error)
	OnFinalize(o *Order) (OrderState, error)
}

type openState struct{}

func (openState) Status() Status { return StatusOpen }

func (openState) OnPurchase(*Order) (OrderState, error) { return openState{}, nil }

func (openState) OnSurcharge(*Order) (OrderState, error) { return openState{}, nil }

func (openState) OnFinalize(*Order) (OrderState, error) { return finalizedState{}, nil }

type finalizedState struct{}

func (finalizedState) Status() Status { return StatusFinalized }

func (finalizedState) OnPurchase(*Order) (OrderState, error) { return nil, ErrOrderFinalized }

func (finalizedState) OnSurcharge(*Order) (OrderState, error) { return nil, ErrOrderFinalized }

func (finalizedState) OnFinalize(*Order) (OrderState, error) { return nil, ErrOrderFinalized }
