package models

// Caller is the resolved identity of the authenticated requester. The auth
// middleware builds one per request and hands it to the services, so the
// authorization predicates stay pure and testable instead of reading
// ambient session state.
type Caller struct {
	ID              uint
	Role            string
	ManagedHotelIDs []uint
}

func (c Caller) IsAdmin() bool { return c.Role == RoleAdmin }

func (c Caller) IsHotelManager() bool { return c.Role == RoleHotelManager }

// ManagesHotel reports whether a hotel_manager caller administers the
// given hotel. Admins pass every hotel check.
func (c Caller) ManagesHotel(hotelID uint) bool {
	if c.IsAdmin() {
		return true
	}
	if !c.IsHotelManager() {
		return false
	}
	for _, id := range c.ManagedHotelIDs {
		if id == hotelID {
			return true
		}
	}
	return false
}

// IsStaffFor reports whether the caller may administer bookings of the
// given hotel: admin, or a manager of that hotel.
func (c Caller) IsStaffFor(hotelID uint) bool {
	return c.IsAdmin() || (c.IsHotelManager() && c.ManagesHotel(hotelID))
}

// CanAccessBooking: the booking's owner, an admin, or a manager of the
// booking's hotel.
func (c Caller) CanAccessBooking(b *Booking) bool {
	if b == nil {
		return false
	}
	return b.UserID == c.ID || c.IsStaffFor(b.HotelID)
}
