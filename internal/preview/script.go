package preview

import "strconv"

// clientScript returns the live preview script for the container matched
// by selector.
func clientScript(selector string) string {
	return "<script>\nvar tinyvueSelector = " + strconv.Quote(selector) + ";\n" + liveScript + "</script>\n"
}

const liveScript = `(function() {
    'use strict';

    var reconnectDelay = 1000;
    var maxReconnectDelay = 30000;

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        var ws = new WebSocket(protocol + '//' + location.host + '/_tinyvue/live');

        ws.onopen = function() {
            reconnectDelay = 1000;
        };

        ws.onmessage = function(e) {
            var msg;
            try {
                msg = JSON.parse(e.data);
            } catch (err) {
                return;
            }

            switch (msg.type) {
                case 'render':
                    var el = document.querySelector(tinyvueSelector);
                    if (el) {
                        el.innerHTML = msg.html;
                    }
                    break;

                case 'error':
                    console.error('[tinyvue] Render error:', msg.error);
                    break;
            }
        };

        ws.onclose = function() {
            setTimeout(function() {
                reconnectDelay = Math.min(reconnectDelay * 2, maxReconnectDelay);
                connect();
            }, reconnectDelay);
        };

        ws.onerror = function() {
            ws.close();
        };
    }

    if (document.readyState === 'loading') {
        document.addEventListener('DOMContentLoaded', connect);
    } else {
        connect();
    }
})();
`
