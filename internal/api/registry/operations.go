package registry

import (
	"context"
	"encoding/json"

	"github.com/spec-kit/helpdesk-sim/internal/api/dto"
	"github.com/spec-kit/helpdesk-sim/internal/persistence"
	"github.com/spec-kit/helpdesk-sim/internal/service"
	"github.com/spec-kit/helpdesk-sim/pkg/util"
)

// Services bundles everything the operation set dispatches into.
type Services struct {
	Tickets  *service.TicketService
	Audits   *service.AuditService
	Comments *service.CommentService
	Uploads  *service.UploadService
	Users    *service.UserService
	State    *persistence.State
}

type stateAck struct {
	Success bool `json:"success"`
}

// RegisterOperations binds every simulated operation to the registry.
func RegisterOperations(r *Registry, s Services) {
	registerTicketOperations(r, s)
	registerAuditOperations(r, s)
	registerCommentOperations(r, s)
	registerUploadOperations(r, s)
	registerUserOperations(r, s)
	registerStateOperations(r, s)
}

func registerTicketOperations(r *Registry, s Services) {
	r.MustRegister("create_ticket",
		"Create a ticket with its first comment and creation audit.",
		createTicketSchema,
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var req dto.CreateTicketRequest
			if err := decode(args, &req); err != nil {
				return nil, err
			}
			result, err := s.Tickets.CreateTicket(ctx, req.Ticket)
			if err != nil {
				return nil, err
			}
			return dto.CreateTicketResponse{
				Ticket:  dto.NewTicketResponse(result.Ticket),
				Audit:   result.Audit,
				Message: result.Message,
			}, nil
		})

	r.MustRegister("update_ticket",
		"Apply a partial update to a ticket, recording one change event per modified field.",
		updateTicketSchema,
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var req dto.UpdateTicketRequest
			if err := decode(args, &req); err != nil {
				return nil, err
			}
			ticket, err := s.Tickets.UpdateTicket(ctx, req.TicketID, req.TicketUpdates)
			if err != nil {
				return nil, err
			}
			return dto.UpdateTicketResponse{Success: true, Ticket: dto.NewTicketResponse(ticket)}, nil
		})

	r.MustRegister("delete_ticket",
		"Delete a ticket and return its final snapshot. Audits and comments stay behind.",
		ticketIDSchema,
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var req dto.TicketIDRequest
			if err := decode(args, &req); err != nil {
				return nil, err
			}
			ticket, err := s.Tickets.DeleteTicket(ctx, req.TicketID)
			if err != nil {
				return nil, err
			}
			return dto.NewTicketResponse(ticket), nil
		})

	r.MustRegister("show_ticket",
		"Return one ticket by id.",
		ticketIDSchema,
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var req dto.TicketIDRequest
			if err := decode(args, &req); err != nil {
				return nil, err
			}
			ticket, err := s.Tickets.ShowTicket(ctx, req.TicketID)
			if err != nil {
				return nil, err
			}
			return dto.NewTicketResponse(ticket), nil
		})

	r.MustRegister("list_tickets",
		"List all tickets ordered by id.",
		emptySchema,
		func(ctx context.Context, args json.RawMessage) (any, error) {
			return dto.NewTicketListResponse(s.Tickets.ListTickets(ctx)), nil
		})
}

func registerAuditOperations(r *Registry, s Services) {
	r.MustRegister("list_ticket_audits",
		"List the audit trail of a ticket, ordered by audit id, paginated.",
		listTicketAuditsSchema,
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var req dto.ListTicketAuditsRequest
			if err := decode(args, &req); err != nil {
				return nil, err
			}
			page, err := s.Audits.ListTicketAudits(ctx, req.TicketID, req.AuditListParams)
			if err != nil {
				return nil, err
			}
			return dto.NewAuditListResponse(page), nil
		})

	r.MustRegister("show_ticket_audit",
		"Return one audit of one ticket.",
		showTicketAuditSchema,
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var req dto.ShowTicketAuditRequest
			if err := decode(args, &req); err != nil {
				return nil, err
			}
			audit, err := s.Audits.ShowTicketAudit(ctx, req.TicketID, req.AuditID)
			if err != nil {
				return nil, err
			}
			return audit, nil
		})
}

func registerCommentOperations(r *Registry, s Services) {
	r.MustRegister("list_ticket_comments",
		"List the comments of a ticket, sorted and paginated.",
		listTicketCommentsSchema,
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var req dto.ListTicketCommentsRequest
			if err := decode(args, &req); err != nil {
				return nil, err
			}
			page, err := s.Comments.ListTicketComments(ctx, req.TicketID, req.CommentListParams)
			if err != nil {
				return nil, err
			}
			return dto.NewCommentListResponse(page), nil
		})

	r.MustRegister("create_comment",
		"Add a standalone comment to a ticket.",
		createCommentSchema,
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var req dto.CreateCommentRequest
			if err := decode(args, &req); err != nil {
				return nil, err
			}
			comment, err := s.Comments.CreateComment(ctx, req.ToInput())
			if err != nil {
				return nil, err
			}
			return dto.NewCommentResponse(service.CommentView{Comment: comment}), nil
		})

	r.MustRegister("update_comment",
		"Apply a partial update to a comment.",
		updateCommentSchema,
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var req dto.UpdateCommentRequest
			if err := decode(args, &req); err != nil {
				return nil, err
			}
			comment, err := s.Comments.UpdateComment(ctx, req.CommentID, req.ToInput())
			if err != nil {
				return nil, err
			}
			return dto.NewCommentResponse(service.CommentView{Comment: comment}), nil
		})

	r.MustRegister("delete_comment",
		"Delete a comment and return its final snapshot.",
		commentIDSchema,
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var req dto.CommentIDRequest
			if err := decode(args, &req); err != nil {
				return nil, err
			}
			comment, err := s.Comments.DeleteComment(ctx, req.CommentID)
			if err != nil {
				return nil, err
			}
			return dto.NewCommentResponse(service.CommentView{Comment: comment}), nil
		})

	r.MustRegister("show_comment",
		"Return one comment by id.",
		commentIDSchema,
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var req dto.CommentIDRequest
			if err := decode(args, &req); err != nil {
				return nil, err
			}
			comment, err := s.Comments.ShowComment(ctx, req.CommentID)
			if err != nil {
				return nil, err
			}
			return dto.NewCommentResponse(service.CommentView{Comment: comment}), nil
		})
}

func registerUploadOperations(r *Registry, s Services) {
	r.MustRegister("upload_file",
		"Register a mock attachment under a new or existing upload token.",
		uploadFileSchema,
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var input service.UploadInput
			if err := decode(args, &input); err != nil {
				return nil, err
			}
			result, err := s.Uploads.UploadFile(ctx, input)
			if err != nil {
				return nil, err
			}
			return dto.NewUploadResponse(result), nil
		})

	r.MustRegister("show_upload",
		"Resolve an upload token to its attachments.",
		showUploadSchema,
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var req dto.ShowUploadRequest
			if err := decode(args, &req); err != nil {
				return nil, err
			}
			result, err := s.Uploads.ShowUpload(ctx, req.Token)
			if err != nil {
				return nil, err
			}
			return dto.NewUploadResponse(result), nil
		})
}

func registerUserOperations(r *Registry, s Services) {
	r.MustRegister("create_user",
		"Create a user. Email and external id must be unique.",
		createUserSchema,
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var input service.UserCreateInput
			if err := decode(args, &input); err != nil {
				return nil, err
			}
			user, err := s.Users.CreateUser(ctx, input)
			if err != nil {
				return nil, err
			}
			return dto.UserEnvelope{Success: true, User: user}, nil
		})

	r.MustRegister("list_users",
		"List all users ordered by id.",
		emptySchema,
		func(ctx context.Context, args json.RawMessage) (any, error) {
			return s.Users.ListUsers(ctx), nil
		})

	r.MustRegister("show_user",
		"Return one user by id.",
		userIDSchema,
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var req dto.UserIDRequest
			if err := decode(args, &req); err != nil {
				return nil, err
			}
			user, err := s.Users.ShowUser(ctx, req.UserID)
			if err != nil {
				return nil, err
			}
			return user, nil
		})

	r.MustRegister("update_user",
		"Apply a partial update to a user.",
		updateUserSchema,
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var req dto.UpdateUserRequest
			if err := decode(args, &req); err != nil {
				return nil, err
			}
			user, err := s.Users.UpdateUser(ctx, req.UserID, req.UserUpdateInput)
			if err != nil {
				return nil, err
			}
			return dto.UserEnvelope{Success: true, User: user}, nil
		})

	r.MustRegister("delete_user",
		"Delete a user and return the final record.",
		userIDSchema,
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var req dto.UserIDRequest
			if err := decode(args, &req); err != nil {
				return nil, err
			}
			user, err := s.Users.DeleteUser(ctx, req.UserID)
			if err != nil {
				return nil, err
			}
			return user, nil
		})
}

func registerStateOperations(r *Registry, s Services) {
	r.MustRegister("export_state",
		"Export the whole store as one JSON snapshot.",
		emptySchema,
		func(ctx context.Context, args json.RawMessage) (any, error) {
			data, err := s.State.Export()
			if err != nil {
				return nil, util.NewInternalError(err)
			}
			return json.RawMessage(data), nil
		})

	r.MustRegister("import_state",
		"Replace the whole store with a JSON snapshot.",
		importStateSchema,
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var req struct {
				State json.RawMessage `json:"state"`
			}
			if err := decode(args, &req); err != nil {
				return nil, err
			}
			if err := s.State.Import(req.State); err != nil {
				return nil, util.NewValidationError("snapshot is not importable", map[string]any{"cause": err.Error()})
			}
			return stateAck{Success: true}, nil
		})

	r.MustRegister("reset_state",
		"Empty the store and restart every id counter.",
		emptySchema,
		func(ctx context.Context, args json.RawMessage) (any, error) {
			s.State.Reset()
			return stateAck{Success: true}, nil
		})
}

// decode unmarshals args into v. Schema validation has already run, so
// a failure here means the arguments and the schema disagree about a
// representable Go shape.
func decode(args json.RawMessage, v any) error {
	if err := json.Unmarshal(args, v); err != nil {
		return util.NewValidationError("malformed arguments", map[string]any{"cause": err.Error()})
	}
	return nil
}
