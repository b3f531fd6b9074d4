package registry

// Argument schemas, one per operation, declared as draft-7 documents.
// Top-level argument objects reject unknown keys so a misspelled
// argument name surfaces as a validation error instead of being
// silently ignored; nested domain objects stay open.

const emptySchema = `{
  "type": "object",
  "additionalProperties": false
}`

const ticketIDSchema = `{
  "type": "object",
  "properties": {
    "ticket_id": {"type": "integer"}
  },
  "required": ["ticket_id"],
  "additionalProperties": false
}`

const createTicketSchema = `{
  "type": "object",
  "properties": {
    "ticket": {
      "type": "object",
      "properties": {
        "subject": {"type": "string"},
        "raw_subject": {"type": "string"},
        "comment": {
          "type": "object",
          "properties": {
            "body": {"type": "string"},
            "html_body": {"type": "string"},
            "public": {"type": "boolean"},
            "author_id": {"type": "integer"},
            "uploads": {"type": "array", "items": {"type": "string"}}
          },
          "required": ["body"]
        },
        "requester_id": {"type": "integer"},
        "submitter_id": {"type": "integer"},
        "assignee_id": {"type": "integer"},
        "assignee_email": {"type": "string"},
        "organization_id": {"type": "integer"},
        "group_id": {"type": "integer"},
        "external_id": {"type": "string"},
        "type": {"type": "string", "enum": ["problem", "incident", "question", "task"]},
        "priority": {"type": "string", "enum": ["urgent", "high", "normal", "low"]},
        "status": {"type": "string", "enum": ["new", "open", "pending", "hold", "solved", "closed"]},
        "recipient": {"type": "string"},
        "collaborator_ids": {"type": "array", "items": {"type": "integer"}},
        "collaborators": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "user_id": {"type": "integer"},
              "name": {"type": "string"},
              "email": {"type": "string"}
            }
          }
        },
        "follower_ids": {"type": "array", "items": {"type": "integer"}},
        "followers": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "user_id": {"type": "integer"},
              "user_email": {"type": "string"},
              "action": {"type": "string"}
            }
          }
        },
        "email_cc_ids": {"type": "array", "items": {"type": "integer"}},
        "email_ccs": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "user_id": {"type": "integer"},
              "user_email": {"type": "string"},
              "action": {"type": "string"}
            }
          }
        },
        "problem_id": {"type": "integer"},
        "due_at": {"type": "string"},
        "tags": {"type": "array", "items": {"type": "string"}},
        "custom_fields": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "id": {"type": "integer"}
            },
            "required": ["id", "value"]
          }
        },
        "sharing_agreement_ids": {"type": "array", "items": {"type": "integer"}},
        "brand_id": {"type": "integer"},
        "attribute_value_ids": {"type": "array", "items": {"type": "integer"}},
        "custom_status_id": {"type": "integer"},
        "requester": {"type": "string"},
        "safe_update": {"type": "boolean"},
        "ticket_form_id": {"type": "integer"},
        "updated_stamp": {"type": "string"},
        "via_followup_source_id": {"type": "integer"},
        "via_id": {"type": "integer"},
        "voice_comment": {"type": "object"},
        "via": {
          "type": "object",
          "properties": {
            "channel": {"type": "string"},
            "source": {"type": "object"}
          }
        },
        "metadata": {"type": "object"},
        "macro_id": {"type": "integer"},
        "macro_ids": {"type": "array", "items": {"type": "integer"}}
      },
      "required": ["comment", "requester_id"]
    }
  },
  "required": ["ticket"],
  "additionalProperties": false
}`

const updateTicketSchema = `{
  "type": "object",
  "properties": {
    "ticket_id": {"type": "integer"},
    "ticket_updates": {
      "type": "object",
      "properties": {
        "subject": {"type": "string"},
        "comment_body": {"type": "string"},
        "priority": {"type": "string", "enum": ["urgent", "high", "normal", "low"]},
        "ticket_type": {"type": "string", "enum": ["problem", "incident", "question", "task"]},
        "status": {"type": "string", "enum": ["new", "open", "pending", "hold", "solved", "closed"]},
        "attribute_value_ids": {"type": "array", "items": {"type": "integer"}},
        "custom_status_id": {"type": "integer"},
        "requester": {"type": "string"},
        "safe_update": {"type": "boolean"},
        "ticket_form_id": {"type": "integer"},
        "updated_stamp": {"type": "string"},
        "via_followup_source_id": {"type": "integer"},
        "via_id": {"type": "integer"},
        "voice_comment": {"type": "object"},
        "assignee_id": {"type": "integer"},
        "assignee_email": {"type": "string"}
      }
    }
  },
  "required": ["ticket_id", "ticket_updates"],
  "additionalProperties": false
}`

const listTicketAuditsSchema = `{
  "type": "object",
  "properties": {
    "ticket_id": {"type": "integer"},
    "page": {"type": "integer", "minimum": 1},
    "per_page": {"type": "integer", "minimum": 1},
    "sort_order": {"type": "string"}
  },
  "required": ["ticket_id"],
  "additionalProperties": false
}`

const showTicketAuditSchema = `{
  "type": "object",
  "properties": {
    "ticket_id": {"type": "integer"},
    "audit_id": {"type": "integer"}
  },
  "required": ["ticket_id", "audit_id"],
  "additionalProperties": false
}`

const listTicketCommentsSchema = `{
  "type": "object",
  "properties": {
    "ticket_id": {"type": "integer"},
    "page": {"type": "integer", "minimum": 1},
    "per_page": {"type": "integer", "minimum": 1},
    "sort_by": {"type": "string"},
    "sort_order": {"type": "string"},
    "include_attachments": {"type": "boolean"}
  },
  "required": ["ticket_id"],
  "additionalProperties": false
}`

const createCommentSchema = `{
  "type": "object",
  "properties": {
    "ticket_id": {"type": "integer"},
    "author_id": {"type": "integer"},
    "body": {"type": "string"},
    "public": {"type": "boolean"},
    "comment_type": {"type": "string"},
    "audit_id": {"type": "integer"},
    "attachments": {"type": "array", "items": {"type": "integer"}}
  },
  "required": ["ticket_id", "author_id", "body"],
  "additionalProperties": false
}`

const updateCommentSchema = `{
  "type": "object",
  "properties": {
    "comment_id": {"type": "integer"},
    "body": {"type": "string"},
    "public": {"type": "boolean"},
    "comment_type": {"type": "string"},
    "audit_id": {"type": "integer"},
    "attachments": {"type": "array", "items": {"type": "integer"}}
  },
  "required": ["comment_id"],
  "additionalProperties": false
}`

const commentIDSchema = `{
  "type": "object",
  "properties": {
    "comment_id": {"type": "integer"}
  },
  "required": ["comment_id"],
  "additionalProperties": false
}`

const uploadFileSchema = `{
  "type": "object",
  "properties": {
    "filename": {"type": "string"},
    "token": {"type": "string"},
    "content_type": {"type": "string"},
    "file_size": {"type": "integer", "minimum": 0}
  },
  "required": ["filename"],
  "additionalProperties": false
}`

const showUploadSchema = `{
  "type": "object",
  "properties": {
    "token": {"type": "string"}
  },
  "required": ["token"],
  "additionalProperties": false
}`

const createUserSchema = `{
  "type": "object",
  "properties": {
    "name": {"type": "string"},
    "email": {"type": "string"},
    "role": {"type": "string", "enum": ["end-user", "agent", "admin"]},
    "organization_id": {"type": "integer"},
    "tags": {"type": "array", "items": {"type": "string"}},
    "phone": {"type": "string"},
    "alias": {"type": "string"},
    "details": {"type": "string"},
    "notes": {"type": "string"},
    "external_id": {"type": "string"},
    "locale": {"type": "string"},
    "time_zone": {"type": "string"},
    "verified": {"type": "boolean"},
    "suspended": {"type": "boolean"}
  },
  "required": ["name"],
  "additionalProperties": false
}`

const updateUserSchema = `{
  "type": "object",
  "properties": {
    "user_id": {"type": "integer"},
    "name": {"type": "string"},
    "email": {"type": "string"},
    "role": {"type": "string", "enum": ["end-user", "agent", "admin"]},
    "organization_id": {"type": "integer"},
    "tags": {"type": "array", "items": {"type": "string"}},
    "phone": {"type": "string"},
    "alias": {"type": "string"},
    "details": {"type": "string"},
    "notes": {"type": "string"},
    "external_id": {"type": "string"},
    "locale": {"type": "string"},
    "time_zone": {"type": "string"},
    "verified": {"type": "boolean"},
    "suspended": {"type": "boolean"},
    "active": {"type": "boolean"}
  },
  "required": ["user_id"],
  "additionalProperties": false
}`

const userIDSchema = `{
  "type": "object",
  "properties": {
    "user_id": {"type": "integer"}
  },
  "required": ["user_id"],
  "additionalProperties": false
}`

const importStateSchema = `{
  "type": "object",
  "properties": {
    "state": {"type": "object"}
  },
  "required": ["state"],
  "additionalProperties": false
}`
