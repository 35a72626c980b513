package models

// Human-readable labels, addressed by enum value. Presentation only; the
// services never read these.

var BookingStatusLabels = map[string]string{
	BookingStatusPending:   "Menunggu Konfirmasi",
	BookingStatusConfirmed: "Terkonfirmasi",
	BookingStatusCancelled: "Dibatalkan",
	BookingStatusCompleted: "Selesai",
}

var PaymentStatusLabels = map[string]string{
	PaymentStatusPending:  "Menunggu Pembayaran",
	PaymentStatusPaid:     "Lunas",
	PaymentStatusFailed:   "Gagal",
	PaymentStatusRefunded: "Dikembalikan",
}

var PaymentMethodLabels = map[string]string{
	PaymentMethodCreditCard:     "Kartu Kredit",
	PaymentMethodBankTransfer:   "Transfer Bank",
	PaymentMethodEWallet:        "E-Wallet",
	PaymentMethodVirtualAccount: "Virtual Account",
	PaymentMethodCash:           "Tunai",
}

var RoomStatusLabels = map[string]string{
	RoomStatusAvailable:   "Tersedia",
	RoomStatusOccupied:    "Ditempati",
	RoomStatusMaintenance: "Maintenance",
	RoomStatusOutOfOrder:  "Rusak",
}

var RatingLabels = map[int]string{
	1: "Sangat Buruk",
	2: "Buruk",
	3: "Cukup",
	4: "Baik",
	5: "Sangat Baik",
}
