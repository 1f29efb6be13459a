package models

// All returns every persisted model in migration order
func All() []interface{} {
	return []interface{}{
		&UserAuth{},
		&ResCompany{},
		&ResPartner{},
		&IrConfigParameter{},
		&DeliveryCarrier{},
		&DeliveryCarrierOption{},
		&StockPicking{},
		&StockQuantPackage{},
		&IrAttachment{},
		&ShippingLabel{},
	}
}
