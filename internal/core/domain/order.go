package domain

// Order is a row of the dashboard order list.
type Order struct {
	OrderID                  string   `json:"order_id"`
	OrderNumber              string   `json:"order_number"`
	POReferenceNo            string   `json:"po_reference_no"`
	PIDocumentNo             string   `json:"pi_document_no"`
	CustomerDisplayName      string   `json:"customer_display_name"`
	SupplierDisplayName      string   `json:"supplier_display_name"`
	LatestState              string   `json:"latest_state"`
	LatestStateDisplayValue  string   `json:"latest_state_display_value"`
	OrderStage               string   `json:"order_stage,omitempty"`
	OrderItems               []string `json:"order_item,omitempty"`
	PaymentTerms             string   `json:"payment_terms"`
	PaymentTermsDisplayValue string   `json:"payment_terms_display_value"`
	Currency                 string   `json:"currency"`
	AmountDue                string   `json:"amount_due"`
	TotalAmount              string   `json:"total_amount"`
	LatestPaymentDate        *string  `json:"latest_payment_date"`
	CreatedDate              string   `json:"created_date"`
	ModifiedDate             string   `json:"modified_date"`
}

// OrderItem is a product line of an order.
type OrderItem struct {
	OrderItemID                 string `json:"order_item_id"`
	ProductName                 string `json:"product_name"`
	SellingPrice                string `json:"selling_price"`
	Quantity                    string `json:"quantity"`
	TotalAmount                 string `json:"total_amount"`
	CountryOfOrigin             string `json:"country_of_origin_display_value"`
	PackageDetails              string `json:"package_details"`
	Description                 string `json:"description"`
	HSCode                      string `json:"hs_code"`
	IsPreShipmentSampleRequired bool   `json:"is_pre_shipment_sample_required"`
	IsHazardous                 bool   `json:"is_hazardous"`
}

// StateActivityLog is one customer-visible state of an order.
type StateActivityLog struct {
	StateName      string  `json:"state_name"`
	ActualDate     *string `json:"actual_date"`
	EstimatedDate  *string `json:"estimated_date"`
	IsCurrentState bool    `json:"is_current_state"`
	Logs           []any   `json:"logs,omitempty"`
}

// TaskEstimate is an estimated milestone date.
type TaskEstimate struct {
	ID                 int     `json:"id"`
	EstimatedDateValue *string `json:"estimated_date_value"`
	StateTypeValue     string  `json:"state_type_value"`
	StateType          string  `json:"state_type"`
	ActualDate         *string `json:"actual_date"`
	Order              string  `json:"order"`
	EstimatedDate      *string `json:"estimated_date"`
}

// OrderDetails is the overview tab of an order.
type OrderDetails struct {
	OrderID                  string             `json:"order_id"`
	OrderItems               []OrderItem        `json:"order_item"`
	StateActivityLog         []StateActivityLog `json:"customer_state_activity_log"`
	POReferenceNo            string             `json:"po_reference_no"`
	PIDocumentNo             string             `json:"pi_document_no"`
	PaymentTermsDisplayValue string             `json:"payment_terms_display_value"`
	AmountDue                string             `json:"amount_due"`
	Total                    string             `json:"total"`
	Currency                 string             `json:"currency"`
	LatestPaymentDate        *string            `json:"latest_payment_date"`
	TaskEstimates            []TaskEstimate     `json:"task_estimates"`
}

// Contact is a person attached to an order point of contact.
type Contact struct {
	UserID       string  `json:"user_id"`
	GivenName    string  `json:"given_name"`
	FamilyName   string  `json:"family_name"`
	PhoneNumber  string  `json:"phone_number"`
	Email        string  `json:"email"`
	ProfileImage *string `json:"profile_image"`
}

// POC is a point of contact for an order.
type POC struct {
	OrderPOCID    string    `json:"order_poc_id"`
	Order         string    `json:"order"`
	Users         []Contact `json:"user"`
	InternalTeam  string    `json:"internal_team"`
	POCType       string    `json:"poc_type"`
	CreatedBy     string    `json:"created_by"`
	LastUpdatedBy string    `json:"last_updated_by"`
}

// DocumentInfo points at the stored document object.
type DocumentInfo struct {
	ID             int    `json:"id"`
	DocumentObject string `json:"document_object"`
	CreatedAt      string `json:"created_at"`
}

// Document is an order document.
type Document struct {
	DocumentTypeDisplayValue string       `json:"document_type_display_value"`
	DisplayName              string       `json:"display_name"`
	OrderItemName            string       `json:"order_item_name,omitempty"`
	Info                     DocumentInfo `json:"customer_document_info"`
	CustomerTags             []string     `json:"customer_tags"`
	CreatedBy                string       `json:"created_by"`
}

// TrackingEvent is one leg of the shipment tracking table.
type TrackingEvent struct {
	Location      string `json:"location"`
	ShipActivity  string `json:"ship_activity"`
	VesselName    string `json:"vessel_name"`
	TentativeDate string `json:"tentative_date"`
	ActualDate    string `json:"actual_date"`
	IsReached     bool   `json:"is_reached"`
	// Delay is sent either as a number of days or as free text.
	Delay any `json:"delay"`
}

// TrackingData is the shipment tracking tab of an order.
type TrackingData struct {
	IframeURL          string          `json:"iframe_url"`
	Events             []TrackingEvent `json:"tracking_table_data"`
	TransportationMode string          `json:"transportation_mode"`
	Message            string          `json:"message"`
}

// Photo is a container stuffing image.
type Photo struct {
	Name        string `json:"name"`
	ImageObject string `json:"image_object"`
}

// ActivityLog is one entry of the order progress tab.
type ActivityLog struct {
	Entry     string `json:"activity_log"`
	Timestamp string `json:"timestamp"`
	Actor     string `json:"actor,omitempty"`
}
