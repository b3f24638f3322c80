package routes

import "net/url"

// Conventional is the stock RouteSet implementing the RESTful layout the
// inbox module mounts:
//
//	/{resources}/{target_id}/notifications
//	/{resources}/{target_id}/notifications/open_all
//	/{resources}/{target_id}/notifications/{id}
//	/{resources}/{target_id}/notifications/{id}/move
//	/{resources}/{target_id}/notifications/{id}/open
//
// Prefix allows mounting the whole tree under a path prefix, e.g. "/app".
type Conventional struct {
	Prefix string
}

func (c Conventional) NotificationPath(target Target, notificationID string, params url.Values) string {
	return withParams(c.base(target)+"/"+notificationID, params)
}

func (c Conventional) MoveNotificationPath(target Target, notificationID string, params url.Values) string {
	return withParams(c.base(target)+"/"+notificationID+"/move", params)
}

func (c Conventional) OpenNotificationPath(target Target, notificationID string, params url.Values) string {
	return withParams(c.base(target)+"/"+notificationID+"/open", params)
}

func (c Conventional) OpenAllNotificationsPath(target Target, params url.Values) string {
	return withParams(c.base(target)+"/open_all", params)
}

func (c Conventional) base(target Target) string {
	return c.Prefix + "/" + target.ResourcesName() + "/" + target.ResourceID() + "/notifications"
}

func withParams(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.Encode()
}
