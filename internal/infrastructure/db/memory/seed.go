package memory

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/order-portal/internal/core/domain"
	"github.com/99minutos/order-portal/internal/core/ports"
)

// SeedPassword is the password of every seeded account.
const SeedPassword = "portal-demo"

const (
	seedCustomerA = "C-100"
	seedCustomerB = "C-200"
)

var seedProducts = []string{"Citric Acid", "Caustic Soda Flakes", "Sodium Benzoate", "Glycerine USP", "Sorbitol 70%"}

var seedStates = []string{
	"Order Confirmed",
	"Export Clearance Obtained",
	"Shipment Departure from POL",
	"Shipment In Transit",
	"Shipment Arrival at POD",
	"Order Completed",
}

// SeedAccounts returns the fixture accounts with passwords hashed at cost.
// Tests pass bcrypt.MinCost.
func SeedAccounts(cost int) ([]domain.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}
	all := []domain.Action{domain.ActionRead, domain.ActionCreate, domain.ActionUpdate, domain.ActionDelete}
	return []domain.Account{
		{
			ID: "u-buyer", Email: "buyer@acme.test", PasswordHash: string(hash),
			Role: domain.RoleCustomer, UserType: "buyer", CustomerID: seedCustomerA,
			Permissions: []domain.Permission{
				domain.Grant(domain.ModuleOrders, domain.ActionRead),
				domain.Grant(domain.ModuleContacts, domain.ActionRead),
				domain.Grant(domain.ModuleDocuments, domain.ActionRead),
				domain.Grant(domain.ModuleTracking, domain.ActionRead),
				domain.Grant(domain.ModulePhotos, domain.ActionRead),
				domain.Grant(domain.ModuleProgress, domain.ActionRead),
			},
		},
		{
			ID: "u-viewer", Email: "viewer@acme.test", PasswordHash: string(hash),
			Role: domain.RoleCustomer, UserType: "viewer", CustomerID: seedCustomerA,
			Permissions: []domain.Permission{
				domain.Grant(domain.ModuleOrders, domain.ActionRead),
			},
		},
		{
			ID: "u-other", Email: "buyer@globex.test", PasswordHash: string(hash),
			Role: domain.RoleCustomer, UserType: "buyer", CustomerID: seedCustomerB,
			Permissions: []domain.Permission{
				domain.Grant(domain.ModuleOrders, domain.ActionRead),
				domain.Grant(domain.ModuleDocuments, domain.ActionRead),
			},
		},
		{
			ID: "u-ops", Email: "ops@portal.test", PasswordHash: string(hash),
			Role: domain.RoleAdmin, UserType: "internal",
			Permissions: []domain.Permission{
				domain.Grant(domain.ModuleOrders, all...),
				domain.Grant(domain.ModuleContacts, all...),
				domain.Grant(domain.ModuleDocuments, all...),
				domain.Grant(domain.ModuleTracking, all...),
				domain.Grant(domain.ModulePhotos, all...),
				domain.Grant(domain.ModuleProgress, all...),
			},
		},
	}, nil
}

// SeedOrders returns twelve orders for C-100 and three for C-200, so the
// first customer's list spans two pages.
func SeedOrders(now time.Time) []OrderFixture {
	var out []OrderFixture
	for i := 1; i <= 15; i++ {
		customer := seedCustomerA
		if i > 12 {
			customer = seedCustomerB
		}
		out = append(out, seedOrder(i, customer, now.AddDate(0, 0, -i)))
	}
	return out
}

func seedOrder(n int, customer string, created time.Time) OrderFixture {
	id := fmt.Sprintf("ord-%03d", n)
	state := seedStates[n%len(seedStates)]
	stage := map[domain.Stage]string{
		domain.StageConfirmed: "order_confirmed",
		domain.StageInTransit: "in_transit",
		domain.StageCompleted: "order_completed",
	}
	products := []string{seedProducts[n%len(seedProducts)], seedProducts[(n+1)%len(seedProducts)]}
	day := created.Format(time.DateOnly)

	var logs []domain.StateActivityLog
	for _, s := range seedStates {
		entry := domain.StateActivityLog{StateName: s}
		if s == state {
			entry.IsCurrentState = true
			entry.ActualDate = &day
		}
		logs = append(logs, entry)
		if s == state {
			break
		}
	}
	details := domain.OrderDetails{
		OrderID:                  id,
		StateActivityLog:         logs,
		POReferenceNo:            fmt.Sprintf("PO-%05d", 7000+n),
		PIDocumentNo:             fmt.Sprintf("PI-%05d", 3000+n),
		PaymentTermsDisplayValue: "30% advance, 70% against BL",
		AmountDue:                fmt.Sprintf("%d.00", 1000*n),
		Total:                    fmt.Sprintf("%d.00", 2500*n),
		Currency:                 "USD",
	}
	for i, p := range products {
		details.OrderItems = append(details.OrderItems, domain.OrderItem{
			OrderItemID:     fmt.Sprintf("%s-item-%d", id, i+1),
			ProductName:     p,
			Quantity:        fmt.Sprintf("%d", 10*(i+1)),
			SellingPrice:    "125.00",
			CountryOfOrigin: "India",
			PackageDetails:  "25 kg HDPE bags",
		})
	}

	order := domain.Order{
		OrderID:                  id,
		OrderNumber:              fmt.Sprintf("ORD-%04d", 1000+n),
		POReferenceNo:            details.POReferenceNo,
		PIDocumentNo:             details.PIDocumentNo,
		LatestState:              state,
		LatestStateDisplayValue:  state,
		OrderStage:               stage[domain.TimelineStage(details)],
		OrderItems:               products,
		PaymentTermsDisplayValue: details.PaymentTermsDisplayValue,
		Currency:                 details.Currency,
		AmountDue:                details.AmountDue,
		TotalAmount:              details.Total,
		CreatedDate:              created.UTC().Format(time.RFC3339),
		ModifiedDate:             created.UTC().Format(time.RFC3339),
	}

	return OrderFixture{
		CustomerID: customer,
		Order:      order,
		Resources: ports.OrderResources{
			Details: details,
			Contacts: []domain.POC{{
				OrderPOCID: id + "-poc",
				Order:      id,
				POCType:    "sales",
				Users: []domain.Contact{{
					UserID: "sales-1", GivenName: "Priya", FamilyName: "Shah",
					Email: "priya.shah@portal.test", PhoneNumber: "+91 22 5550 0101",
				}},
			}},
			Documents: []domain.Document{{
				DocumentTypeDisplayValue: "Proforma Invoice",
				DisplayName:              details.PIDocumentNo + ".pdf",
				Info:                     domain.DocumentInfo{ID: n, DocumentObject: "documents/" + id + "/pi.pdf", CreatedAt: day},
				CreatedBy:                "sales-1",
			}},
			Tracking: domain.TrackingData{
				TransportationMode: "sea",
				Events: []domain.TrackingEvent{
					{Location: "Nhava Sheva", ShipActivity: "Loaded on vessel", VesselName: "MSC Aurora", TentativeDate: day, IsReached: true, Delay: 0},
					{Location: "Jebel Ali", ShipActivity: "Discharge", VesselName: "MSC Aurora", TentativeDate: day, Delay: "awaiting berth"},
				},
			},
			Photos: []domain.Photo{
				{Name: "container-front.jpg", ImageObject: "stuffing/" + id + "/front.jpg"},
				{Name: "container-seal.jpg", ImageObject: "stuffing/" + id + "/seal.jpg"},
			},
			Activity: []domain.ActivityLog{
				{Entry: "Order confirmed", Timestamp: created.UTC().Format(time.RFC3339), Actor: "sales-1"},
				{Entry: "Moved to " + state, Timestamp: created.Add(48 * time.Hour).UTC().Format(time.RFC3339), Actor: "ops"},
			},
		},
	}
}
