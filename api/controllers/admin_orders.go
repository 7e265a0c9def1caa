package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/AYOGRAM01/Jollyshop/api/responses"
	"github.com/AYOGRAM01/Jollyshop/internal/orders"
	pkgerrors "github.com/AYOGRAM01/Jollyshop/pkg/errors"
	"github.com/AYOGRAM01/Jollyshop/pkg/logger"
)

// AdminPendingOrders lists orders awaiting an approval decision.
func AdminPendingOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		params, err := orderListParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListPending(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// AdminRejectedOrders lists the rejected order archive.
func AdminRejectedOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		params, err := orderListParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListRejected(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// AdminCompletedOrders lists the completed order archive.
func AdminCompletedOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		params, err := orderListParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListCompleted(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// AdminApproveOrder moves a pending order to approved.
func AdminApproveOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return adminOrderTransition(svc, logg, "approved", orders.Service.Approve)
}

// AdminRejectOrder moves a pending order into the rejected archive.
func AdminRejectOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return adminOrderTransition(svc, logg, "rejected", orders.Service.Reject)
}

// AdminCompleteOrder moves an approved order into the completed archive.
func AdminCompleteOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return adminOrderTransition(svc, logg, "completed", orders.Service.Complete)
}

func adminOrderTransition(svc orders.Service, logg *logger.Logger, result string, transition func(orders.Service, context.Context, orders.Actor, uuid.UUID) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := uuidParam(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := transition(svc, r.Context(), actor, orderID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": result})
	}
}
